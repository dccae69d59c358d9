package visibility_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/visibility"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

const (
	courseID  = int64(1)
	filterID  = int64(3)
	pageID    = int64(5)
	teacherID = int64(2) // role
	studentID = int64(8) // role
	biology   = int64(9) // tag
	math      = int64(4) // tag
	history   = int64(7) // tag
)

// fixture builds the scenario from the original plugin's test suite: one
// tagged page, a teacher role associated with the page's tags, a student role
// with no associations.
func fixture(t *testing.T) (*wiki.MemoryHost, *association.MemoryStore, instance.Instance) {
	t.Helper()

	host := wiki.NewMemoryHost()
	host.AddPage(wiki.Page{ID: pageID, SubwikiID: 100, Title: "Cells"})
	host.TagPage(pageID, biology, "biology")
	host.TagPage(pageID, math, "math")

	host.AssignRole(courseID, 42, wiki.Role{ID: teacherID, Name: "teacher"})
	host.AssignRole(courseID, 43, wiki.Role{ID: studentID, Name: "student"})

	store := association.NewMemoryStore()
	require.NoError(t, store.Replace(context.Background(), filterID, 10, []association.Pair{
		{RoleID: teacherID, TagID: biology},
	}))

	return host, store, instance.Instance{ID: filterID, CourseID: courseID, WikiID: 10, Name: "filtered"}
}

func TestCanView_TeacherSeesTaggedPage(t *testing.T) {
	host, store, inst := fixture(t)
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 42}, inst, pageID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_StudentWithoutAssociationDenied(t *testing.T) {
	host, store, inst := fixture(t)
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 43}, inst, pageID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanView_AdminOverrideSkipsAllChecks(t *testing.T) {
	host, store, inst := fixture(t)
	require.NoError(t, store.DeleteAll(context.Background(), filterID))
	eval := visibility.NewEvaluator(host, host, store)

	// No associations at all, user has no roles either: the override alone decides.
	ok, err := eval.CanView(context.Background(), wiki.User{ID: 99, Admin: true}, inst, pageID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_ZeroAssociationsDeniesEveryPage(t *testing.T) {
	host, store, inst := fixture(t)
	require.NoError(t, store.DeleteAll(context.Background(), filterID))
	eval := visibility.NewEvaluator(host, host, store)

	for _, userID := range []int64{42, 43} {
		ok, err := eval.CanView(context.Background(), wiki.User{ID: userID}, inst, pageID)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestCanView_DisjointTagSetsDenied(t *testing.T) {
	host, store, inst := fixture(t)
	require.NoError(t, store.Replace(context.Background(), filterID, 10, []association.Pair{
		{RoleID: teacherID, TagID: history},
	}))
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 42}, inst, pageID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanView_AnySharedTagAllows(t *testing.T) {
	host, store, inst := fixture(t)
	require.NoError(t, store.Replace(context.Background(), filterID, 10, []association.Pair{
		{RoleID: teacherID, TagID: history},
		{RoleID: teacherID, TagID: math},
	}))
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 42}, inst, pageID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_UntaggedPageAlwaysDenied(t *testing.T) {
	host, store, inst := fixture(t)
	host.AddPage(wiki.Page{ID: 6, SubwikiID: 100, Title: "Untagged"})
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 42}, inst, 6)
	require.NoError(t, err)
	assert.False(t, ok, "page with zero tags can never be matched")

	ok, err = eval.CanView(context.Background(), wiki.User{ID: 42, Admin: true}, inst, 6)
	require.NoError(t, err)
	assert.True(t, ok, "except for admins")
}

func TestCanView_SecondRoleMatches(t *testing.T) {
	host, store, inst := fixture(t)
	// User 44 holds two roles; only the second one is associated.
	host.AssignRole(courseID, 44, wiki.Role{ID: studentID, Name: "student"})
	host.AssignRole(courseID, 44, wiki.Role{ID: teacherID, Name: "teacher"})
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 44}, inst, pageID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_StaleTagReferenceIsInert(t *testing.T) {
	host, store, inst := fixture(t)
	// Tag 999 exists on no page anymore; the association simply never matches.
	require.NoError(t, store.Replace(context.Background(), filterID, 10, []association.Pair{
		{RoleID: teacherID, TagID: 999},
	}))
	eval := visibility.NewEvaluator(host, host, store)

	ok, err := eval.CanView(context.Background(), wiki.User{ID: 42}, inst, pageID)
	require.NoError(t, err)
	assert.False(t, ok)
}
