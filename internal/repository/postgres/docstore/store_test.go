package docstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/testutil"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutGetDelete(t *testing.T) {
	store := testutil.MustOpenDocstore(t)
	ctx := context.Background()

	var out doc
	found, err := store.Get(ctx, "widgets/1", &out)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Put(ctx, "widgets/1", doc{Name: "a", Count: 1}))

	found, err = store.Get(ctx, "widgets/1", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, doc{Name: "a", Count: 1}, out)

	// Put on an existing key overwrites.
	require.NoError(t, store.Put(ctx, "widgets/1", doc{Name: "a", Count: 2}))
	_, err = store.Get(ctx, "widgets/1", &out)
	require.NoError(t, err)
	require.Equal(t, 2, out.Count)

	require.NoError(t, store.Delete(ctx, "widgets/1"))
	found, err = store.Get(ctx, "widgets/1", &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestListPrefix(t *testing.T) {
	store := testutil.MustOpenDocstore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "widgets/b", doc{Name: "b"}))
	require.NoError(t, store.Put(ctx, "widgets/a", doc{Name: "a"}))
	require.NoError(t, store.Put(ctx, "gadgets/z", doc{Name: "z"}))

	raws, err := store.ListPrefix(ctx, "widgets/")
	require.NoError(t, err)
	require.Len(t, raws, 2)

	// Ordered by key for stable iteration.
	var first doc
	require.NoError(t, json.Unmarshal(raws[0], &first))
	require.Equal(t, "a", first.Name)
}
