package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remold/internal/engine/registry"
)

func TestRegistry_PutMergesTransformers(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.Put("A", "t1", []byte("first"))
	r.Put("A", "t2", []byte("second"))

	all := r.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, []string{"t1", "t2"}, all["A"].TransformerIDs())
	assert.Equal(t, []byte("second"), all["A"].Content)
}

func TestRegistry_PutSameTransformerTwice(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.Put("A", "t1", []byte("first"))
	r.Put("A", "t1", []byte("again"))

	a, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, a.TransformerIDs())
	assert.Equal(t, []byte("again"), a.Content)
}

func TestRegistry_PutUnattributed(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.PutUnattributed("support/Helper", []byte("helper"))
	r.Put("B", "t1", []byte("b"))
	r.PutUnattributed("B", []byte("b2"))

	all := r.GetAll()
	require.Len(t, all, 2)
	assert.False(t, all["support/Helper"].Attributed())
	assert.Empty(t, all["support/Helper"].TransformerIDs())
	assert.Equal(t, []string{"t1"}, all["B"].TransformerIDs())
	assert.Equal(t, []byte("b2"), all["B"].Content)
}

func TestRegistry_GetAllIsSnapshot(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.Put("A", "t1", []byte("x"))

	snap := r.GetAll()
	r.Put("A", "t2", []byte("y"))
	r.Put("C", "t1", []byte("z"))

	assert.Len(t, snap, 1)
	assert.Equal(t, []string{"t1"}, snap["A"].TransformerIDs())
	assert.Equal(t, []byte("x"), snap["A"].Content)
}

func TestRegistry_Clear(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.Put("A", "t1", []byte("x"))
	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.GetAll())

	_, ok := r.Lookup("A")
	assert.False(t, ok)
}
