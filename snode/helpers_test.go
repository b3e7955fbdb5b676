package snode_test

import (
	"context"
	"testing"

	"github.com/wkalt/sparsetree/arena"
	"github.com/wkalt/sparsetree/snode"
)

// Shape used by the scenario tests: Root -> Dense[4] -> Pointer -> Hashed ->
// Dense[8] of float32 leaves.
type (
	leafBlock   = snode.Dense[float32]
	hashedLevel = snode.Hashed[leafBlock]
	pointerSlot = snode.Pointer[hashedLevel]
	denseLevel  = snode.Dense[pointerSlot]
	scenario    = snode.Root[denseLevel]
)

type scenarioTree struct {
	root     *scenario
	pointers *arena.Arena[hashedLevel]
	blocks   *arena.Arena[leafBlock]
}

func newScenarioTree(t *testing.T, cfg *snode.Config) *scenarioTree {
	t.Helper()
	ctx := context.Background()
	st := &scenarioTree{
		pointers: arena.New[hashedLevel](ctx, cfg.Regime(), arena.WithChecked(cfg.Checked())),
		blocks:   arena.New[leafBlock](ctx, cfg.Regime(), arena.WithChecked(cfg.Checked())),
	}
	st.root = snode.NewRoot(cfg, func(d *denseLevel) {
		d.Init(cfg, 4, func(p *pointerSlot) {
			p.Init(cfg, st.pointers, func(h *hashedLevel) {
				h.Init(cfg, st.blocks, func(b *leafBlock) {
					b.Init(cfg, 8, nil)
				})
			})
		})
	})
	return st
}

func panicValue(f func()) (v any) {
	defer func() {
		v = recover()
	}()
	f()
	return nil
}
