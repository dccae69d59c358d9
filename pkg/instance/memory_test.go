package instance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/instance"
)

func TestMemoryStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	store := instance.NewMemoryStore()

	inst := &instance.Instance{CourseID: 1, WikiID: 10, Name: "Restricted wiki"}
	require.NoError(t, store.Create(ctx, inst))

	assert.NotZero(t, inst.ID)
	assert.False(t, inst.TimeCreated.IsZero())
	assert.Equal(t, inst.TimeCreated, inst.TimeModified)

	got, err := store.Get(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, *inst, got)
}

func TestMemoryStore_CreateValidates(t *testing.T) {
	ctx := context.Background()
	store := instance.NewMemoryStore()

	tests := []struct {
		name string
		inst instance.Instance
	}{
		{name: "missing course", inst: instance.Instance{WikiID: 10, Name: "x"}},
		{name: "missing wiki", inst: instance.Instance{CourseID: 1, Name: "x"}},
		{name: "missing name", inst: instance.Instance{CourseID: 1, WikiID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := tt.inst
			err := store.Create(ctx, &inst)
			assert.ErrorIs(t, err, instance.ErrInvalidInstance)
		})
	}
}

func TestMemoryStore_UpdateUnknown(t *testing.T) {
	ctx := context.Background()
	store := instance.NewMemoryStore()

	inst := &instance.Instance{ID: 99, CourseID: 1, WikiID: 10, Name: "ghost"}
	assert.ErrorIs(t, store.Update(ctx, inst), instance.ErrNotFound)
}

func TestMemoryStore_DeleteUnknown(t *testing.T) {
	ctx := context.Background()
	store := instance.NewMemoryStore()
	assert.ErrorIs(t, store.Delete(ctx, 42), instance.ErrNotFound)
}

func TestMemoryStore_ListByCourse(t *testing.T) {
	ctx := context.Background()
	store := instance.NewMemoryStore()

	a := &instance.Instance{CourseID: 1, WikiID: 10, Name: "a"}
	b := &instance.Instance{CourseID: 1, WikiID: 11, Name: "b"}
	other := &instance.Instance{CourseID: 2, WikiID: 12, Name: "other"}
	require.NoError(t, store.Create(ctx, a))
	require.NoError(t, store.Create(ctx, b))
	require.NoError(t, store.Create(ctx, other))

	got, err := store.ListByCourse(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, inst := range got {
		assert.Equal(t, int64(1), inst.CourseID)
	}
}
