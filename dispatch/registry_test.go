package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/future"
)

func TestAllocateProbesFromZero(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	registry := dispatch.NewRegistry(0)

	first, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	require.EqualValues("open#0", first)

	second, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	require.EqualValues("open#1", second)

	other, err := registry.Allocate("save", future.New(nil))
	require.NoError(err)
	require.EqualValues("save#0", other)

	require.EqualValues(3, registry.Len())
	require.EqualValues(map[string]int{"open": 2, "save": 1}, registry.PendingByOperation())
}

func TestAllocateReusesFreedKeys(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	registry := dispatch.NewRegistry(0)

	_, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	_, err = registry.Allocate("open", future.New(nil))
	require.NoError(err)

	registry.Remove("open#0")

	key, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	require.EqualValues("open#0", key)
}

func TestAllocateBounded(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	registry := dispatch.NewRegistry(2)

	_, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	_, err = registry.Allocate("open", future.New(nil))
	require.NoError(err)

	_, err = registry.Allocate("open", future.New(nil))
	require.ErrorIs(err, dispatch.ErrTooManyPending)

	registry.Remove("open#1")
	key, err := registry.Allocate("open", future.New(nil))
	require.NoError(err)
	require.EqualValues("open#1", key)
}

func TestGetAndRemove(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	registry := dispatch.NewRegistry(0)
	fut := future.New("payload")
	key, err := registry.Allocate("open", fut)
	require.NoError(err)

	got, ok := registry.Get(key)
	require.True(ok)
	require.Same(fut, got)

	registry.Remove(key)
	_, ok = registry.Get(key)
	require.False(ok)
	require.EqualValues(0, registry.Len())
}
