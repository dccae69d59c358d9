package association_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/association"
)

func TestMemoryStore_ReplaceAndGroupedByRole(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	pairs := []association.Pair{
		{RoleID: 2, TagID: 9},
		{RoleID: 2, TagID: 4},
		{RoleID: 3, TagID: 9},
	}
	require.NoError(t, store.Replace(ctx, 1, 10, pairs))

	set, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{9, 4}, set.TagsFor(2))
	assert.ElementsMatch(t, []int64{9}, set.TagsFor(3))
	assert.Empty(t, set.TagsFor(99))
}

func TestMemoryStore_ReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	pairs := []association.Pair{{RoleID: 2, TagID: 9}, {RoleID: 3, TagID: 4}}
	require.NoError(t, store.Replace(ctx, 1, 10, pairs))
	once, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, 1, 10, pairs))
	twice, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMemoryStore_ReplaceDiscardsPreviousSet(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	require.NoError(t, store.Replace(ctx, 1, 10, []association.Pair{{RoleID: 2, TagID: 9}}))
	require.NoError(t, store.Replace(ctx, 1, 10, []association.Pair{{RoleID: 3, TagID: 4}}))

	set, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, set.TagsFor(2), "old role must be gone after replace")
	assert.ElementsMatch(t, []int64{4}, set.TagsFor(3))
}

func TestMemoryStore_ReplaceRejectsInvalidPair(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	require.NoError(t, store.Replace(ctx, 1, 10, []association.Pair{{RoleID: 2, TagID: 9}}))

	err := store.Replace(ctx, 1, 10, []association.Pair{
		{RoleID: 3, TagID: 4},
		{RoleID: 0, TagID: 5},
	})
	require.ErrorIs(t, err, association.ErrInvalidAssociation)

	// The previous set survives a rejected batch untouched.
	set, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{9}, set.TagsFor(2))
}

func TestMemoryStore_InstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	require.NoError(t, store.Replace(ctx, 1, 10, []association.Pair{{RoleID: 2, TagID: 9}}))
	require.NoError(t, store.Replace(ctx, 7, 10, []association.Pair{{RoleID: 2, TagID: 4}}))

	require.NoError(t, store.DeleteAll(ctx, 1))

	gone, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := store.GroupedByRole(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{4}, kept.TagsFor(2))
}

func TestMemoryStore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := association.NewMemoryStore()

	tokens := []string{"2-9", "2-4", "3-9"}
	pairs, err := association.ParsePairs(tokens)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, 1, 10, pairs))

	set, err := store.GroupedByRole(ctx, 1)
	require.NoError(t, err)

	// The reconstructed RoleTagSet is equivalent to the serialized rows,
	// order-independent.
	assert.Len(t, set, 2)
	assert.ElementsMatch(t, []int64{9, 4}, set.TagsFor(2))
	assert.ElementsMatch(t, []int64{9}, set.TagsFor(3))

	rows, err := store.List(ctx, 1)
	require.NoError(t, err)
	got := make([]string, 0, len(rows))
	for _, a := range rows {
		got = append(got, association.Pair{RoleID: a.RoleID, TagID: a.TagID}.Token())
	}
	assert.ElementsMatch(t, tokens, got)
}
