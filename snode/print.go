package snode

import (
	"fmt"
	"reflect"
	"strings"
)

// Print returns a string representation of the tree rooted at node. It only
// shows children that are present and never activates anything, so it is
// safe to use on a tree in either regime. Nodes print as
// "[kind n=N slot:child ...]" and leaves print their value.
func Print(node Any) string {
	sb := &strings.Builder{}
	printNode(sb, node)
	return sb.String()
}

func printNode(sb *strings.Builder, node Any) {
	fmt.Fprintf(sb, "[%s n=%d", node.Kind(), node.N())
	in, ok := node.(inspector)
	if ok {
		for _, slot := range in.slots() {
			child := in.peek(slot)
			if child == nil {
				continue
			}
			fmt.Fprintf(sb, " %d:", slot)
			if inner, ok := child.(Any); ok {
				printNode(sb, inner)
				continue
			}
			sb.WriteString(leafString(child))
		}
	}
	sb.WriteString("]")
}

func leafString(leaf any) string {
	v := reflect.ValueOf(leaf)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		return fmt.Sprint(v.Elem().Interface())
	}
	return fmt.Sprint(leaf)
}
