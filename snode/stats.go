package snode

import (
	"sync/atomic"

	"github.com/goccy/go-json"
)

// counters are shared by every node of a tree. Only rare events are counted:
// construction, child allocation and clears. Lookups and appends are not.
type counters struct {
	nodes       [IndirectKind + 1]atomic.Int64
	allocations atomic.Int64
	clears      atomic.Int64
}

// Stats is a snapshot of a tree's counters.
type Stats struct {
	Nodes       map[string]int64 `json:"nodes"`
	Allocations int64            `json:"allocations"`
	Clears      int64            `json:"clears"`
}

// Stats returns a snapshot of the counters of every node built with c.
func (c *Config) Stats() Stats {
	s := Stats{
		Nodes:       make(map[string]int64),
		Allocations: c.counters.allocations.Load(),
		Clears:      c.counters.clears.Load(),
	}
	for k := RootKind; k <= IndirectKind; k++ {
		if n := c.counters.nodes[k].Load(); n > 0 {
			s.Nodes[k.String()] = n
		}
	}
	return s
}

// JSON encodes the snapshot.
func (s Stats) JSON() ([]byte, error) {
	return json.Marshal(s)
}
