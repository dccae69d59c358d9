package backup_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/backup"
	"github.com/coursekit/wikifilter/pkg/instance"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (s *memStorage) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

func (s *memStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, backup.ErrArchiveNotFound
	}
	return data, nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return backup.ErrArchiveNotFound
	}
	delete(s.objects, key)
	return nil
}

func seedInstance(t *testing.T, instances instance.Store, associations association.Store) instance.Instance {
	t.Helper()
	ctx := context.Background()

	inst := instance.Instance{CourseID: 10, WikiID: 3, Name: "Biology wiki filter", Intro: "<p>restricted</p>", IntroFormat: instance.FormatHTML}
	require.NoError(t, instances.Create(ctx, &inst))
	require.NoError(t, associations.Replace(ctx, inst.ID, inst.WikiID, []association.Pair{
		{RoleID: 2, TagID: 9},
		{RoleID: 2, TagID: 4},
		{RoleID: 5, TagID: 9},
	}))
	return inst
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	instances := instance.NewMemoryStore()
	associations := association.NewMemoryStore()
	storage := newMemStorage()
	svc := backup.NewService(instances, associations, storage)

	inst := seedInstance(t, instances, associations)

	key, err := svc.Export(ctx, inst.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".xml"))

	data, err := storage.Get(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<wikifilter")
	assert.Contains(t, string(data), "<role_id>2</role_id>")

	// Restore into another course and wiki.
	restored, err := svc.Import(ctx, key, 20, 7)
	require.NoError(t, err)
	assert.NotEqual(t, inst.ID, restored.ID, "instance id reassigned")
	assert.Equal(t, int64(20), restored.CourseID)
	assert.Equal(t, int64(7), restored.WikiID)
	assert.Equal(t, inst.Name, restored.Name)
	assert.Equal(t, inst.Intro, restored.Intro)

	set, err := associations.GroupedByRole(ctx, restored.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{4, 9}, set.TagsFor(2))
	assert.ElementsMatch(t, []int64{9}, set.TagsFor(5))

	rows, err := associations.List(ctx, restored.ID)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, int64(7), r.WikiID, "wiki id remapped to the target")
		assert.Equal(t, restored.ID, r.FilterID)
	}
}

func TestService_ExportUnknownInstance(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(instance.NewMemoryStore(), association.NewMemoryStore(), newMemStorage())
	_, err := svc.Export(context.Background(), 404)
	assert.ErrorIs(t, err, instance.ErrNotFound)
}

func TestService_ImportMissingArchive(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(instance.NewMemoryStore(), association.NewMemoryStore(), newMemStorage())
	_, err := svc.Import(context.Background(), "nope.xml", 1, 1)
	assert.ErrorIs(t, err, backup.ErrArchiveNotFound)
}

func TestService_ImportWithoutAssociations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	instances := instance.NewMemoryStore()
	associations := association.NewMemoryStore()
	svc := backup.NewService(instances, associations, newMemStorage())

	inst := instance.Instance{CourseID: 1, WikiID: 1, Name: "empty"}
	require.NoError(t, instances.Create(ctx, &inst))

	key, err := svc.Export(ctx, inst.ID)
	require.NoError(t, err)

	restored, err := svc.Import(ctx, key, 2, 2)
	require.NoError(t, err)

	rows, err := associations.List(ctx, restored.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUnmarshal_RejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"not xml":      "{}",
		"missing name": `<wikifilter id="1"><course>1</course><wiki>2</wiki></wikifilter>`,
		"zero course":  `<wikifilter id="1"><course>0</course><wiki>2</wiki><name>x</name></wikifilter>`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := backup.Unmarshal([]byte(doc))
			assert.ErrorIs(t, err, backup.ErrInvalidArchive)
		})
	}
}
