package snode_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/sparsetree/arena"
	"github.com/wkalt/sparsetree/snode"
	"golang.org/x/sync/errgroup"
)

type cell struct {
	Mass  float32
	Label string
}

func TestHashedHostLookUpActivates(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig()
	cells := arena.New[cell](ctx, arena.Host)
	h := snode.NewHashed(cfg, cells, func(c *cell) { c.Label = "fresh" })
	require.True(t, h.HasNull())
	require.Equal(t, snode.HashedKind, h.Kind())
	require.Equal(t, 0, h.N())

	c := h.LookUp(12)
	require.NotNil(t, c)
	require.Equal(t, "fresh", c.Label)
	require.Equal(t, 1, h.N())

	c.Mass = 2.5
	require.Same(t, c, h.LookUp(12))
	require.Equal(t, float32(2.5), h.LookUp(12).Mass)
	require.Equal(t, 1, cells.Len())

	h.LookUp(3)
	h.Activate(40)
	require.Equal(t, []int{3, 12, 40}, h.Keys())
	require.Equal(t, 3, cells.Len())
}

func TestHashedDeviceLookUpIsPure(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig(snode.WithRegime(arena.Device))
	cells := arena.New[cell](ctx, arena.Device)
	h := snode.NewHashed[cell](cfg, cells, nil)

	require.Nil(t, h.LookUp(7))
	require.True(t, h.Child(7) == nil, "absent child must be an untyped nil")
	require.Equal(t, 0, h.N())
	require.Equal(t, 0, cells.Len())

	h.Activate(7)
	require.NotNil(t, h.LookUp(7))
	require.Equal(t, 1, h.N())
	require.Nil(t, h.LookUp(8))
}

func TestHashedActivateIdempotent(t *testing.T) {
	ctx := context.Background()
	for _, regime := range []arena.Domain{arena.Host, arena.Device} {
		t.Run(regime.String(), func(t *testing.T) {
			cfg := snode.NewConfig(snode.WithRegime(regime))
			cells := arena.New[cell](ctx, regime)
			h := snode.NewHashed[cell](cfg, cells, nil)
			for range 5 {
				h.Activate(9)
			}
			require.Equal(t, 1, h.N())
			require.Equal(t, 1, cells.Len())
		})
	}
}

func TestHashedConcurrentActivate(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig(snode.WithRegime(arena.Device))
	cells := arena.New[cell](ctx, arena.Device)
	inits := atomic.Int32{}
	h := snode.NewHashed(cfg, cells, func(*cell) { inits.Add(1) })

	callers := 64
	keys := 4
	mtx := &sync.Mutex{}
	seen := make(map[int]map[*cell]bool)
	g := errgroup.Group{}
	for c := range callers {
		g.Go(func() error {
			key := c % keys
			h.Activate(key)
			ptr := h.LookUp(key)
			mtx.Lock()
			defer mtx.Unlock()
			if seen[key] == nil {
				seen[key] = make(map[*cell]bool)
			}
			seen[key][ptr] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, keys, h.N())
	require.Equal(t, keys, cells.Len())
	require.Equal(t, int32(keys), inits.Load())
	for key := range keys {
		require.Len(t, seen[key], 1, "key %d resolved to more than one child", key)
	}
}

func TestHashedDomainMismatch(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig()
	cells := arena.New[cell](ctx, arena.Device)
	require.PanicsWithValue(t, snode.DomainError{
		Kind:      snode.HashedKind,
		Regime:    arena.Host,
		Allocator: arena.Device,
	}, func() {
		snode.NewHashed[cell](cfg, cells, nil)
	})
}

func TestHashedCheckedNegativeKey(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig(snode.WithChecked(true))
	h := snode.NewHashed[cell](cfg, arena.New[cell](ctx, arena.Host), nil)
	require.PanicsWithValue(t, snode.IndexError{Kind: snode.HashedKind, Index: -1}, func() {
		h.Activate(-1)
	})
	require.PanicsWithValue(t, snode.IndexError{Kind: snode.HashedKind, Index: -2}, func() {
		h.LookUp(-2)
	})
}

func TestHashedLookUpReleasesLockOnPanic(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig()
	cells := arena.New[cell](ctx, arena.Host, arena.WithChunkSize(1), arena.WithMaxChunks(1))
	h := snode.NewHashed[cell](cfg, cells, nil)
	first := h.LookUp(0)

	require.Panics(t, func() { h.LookUp(1) })

	done := make(chan int)
	go func() {
		done <- h.N()
	}()
	select {
	case n := <-done:
		require.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("hashed node still locked after a panicking lookup")
	}
	require.Same(t, first, h.LookUp(0))
	require.Equal(t, []int{0}, h.Keys())
}

func TestHashedInitPanicReleasesLock(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig(snode.WithRegime(arena.Device))
	cells := arena.New[cell](ctx, arena.Device)
	h := snode.NewHashed(cfg, cells, func(c *cell) {
		if c.Label == "" {
			panic("bad child")
		}
	})
	require.Panics(t, func() { h.Activate(4) })

	done := make(chan struct{})
	go func() {
		h.Keys()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hashed node still locked after a panicking activation")
	}
	require.Nil(t, h.LookUp(4))
}

func TestHashedStripes(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		assertion string
		opts      []snode.Option
		stripes   int
	}{
		{"host default", nil, 1},
		{"device default", []snode.Option{snode.WithRegime(arena.Device)}, 8},
		{"rounded up", []snode.Option{snode.WithRegime(arena.Device), snode.WithStripes(5)}, 8},
		{"single stripe", []snode.Option{snode.WithRegime(arena.Device), snode.WithStripes(1)}, 1},
		{"ignored", []snode.Option{snode.WithStripes(0)}, 1},
		{"host override", []snode.Option{snode.WithStripes(16)}, 16},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			cfg := snode.NewConfig(c.opts...)
			require.Equal(t, c.stripes, cfg.Stripes())

			h := snode.NewHashed[cell](cfg, arena.New[cell](ctx, cfg.Regime()), nil)
			keys := []int{1000, 7, 0, 63, 64, 5, 1 << 30}
			for _, k := range keys {
				h.Activate(k)
			}
			require.Equal(t, len(keys), h.N())
			require.Equal(t, []int{0, 5, 7, 63, 64, 1000, 1 << 30}, h.Keys())
			for _, k := range keys {
				require.NotNil(t, h.LookUp(k))
			}
		})
	}
}

func TestHashedStripedConcurrentActivate(t *testing.T) {
	ctx := context.Background()
	cfg := snode.NewConfig(snode.WithRegime(arena.Device), snode.WithStripes(16))
	cells := arena.New[cell](ctx, arena.Device)
	h := snode.NewHashed[cell](cfg, cells, nil)

	keys := 256
	g := errgroup.Group{}
	for w := range 32 {
		g.Go(func() error {
			for k := range keys {
				h.Activate((k + w) % keys)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, keys, h.N())
	require.Equal(t, keys, cells.Len())
	require.Equal(t, int64(keys), cfg.Stats().Allocations)
	keyList := h.Keys()
	require.Len(t, keyList, keys)
	for i, k := range keyList {
		require.Equal(t, i, k)
	}
}
