package wiki_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/wikifilter/pkg/wiki"
)

func collaborativeHost() *wiki.MemoryHost {
	host := wiki.NewMemoryHost()
	host.AddWiki(wiki.Wiki{ID: 10, CourseID: 1, Name: "Biology wiki", Mode: wiki.ModeCollaborative})
	host.AddSubwiki(wiki.Subwiki{ID: 100, WikiID: 10})
	host.AddPage(wiki.Page{ID: 5, SubwikiID: 100, Title: "Cells", First: true})
	host.AddPage(wiki.Page{ID: 6, SubwikiID: 100, Title: "Genetics"})
	host.TagPage(5, 9, "biology")
	host.TagPage(5, 4, "math")
	host.TagPage(6, 9, "biology")
	host.TagPage(6, 7, "genetics")
	return host
}

func TestTagCollector_MergesPageTags(t *testing.T) {
	host := collaborativeHost()
	collector := wiki.NewTagCollector(host, host, host)

	tags, err := collector.WikiPageTags(context.Background(), 10, wiki.User{ID: 42})
	require.NoError(t, err)

	assert.Equal(t, map[int64]string{9: "biology", 4: "math", 7: "genetics"}, tags)
}

func TestTagCollector_UnknownWiki(t *testing.T) {
	host := collaborativeHost()
	collector := wiki.NewTagCollector(host, host, host)

	_, err := collector.WikiPageTags(context.Background(), 999, wiki.User{ID: 42})
	assert.ErrorIs(t, err, wiki.ErrWikiNotFound)
}

func TestTagCollector_IndividualModeUsesUserPartition(t *testing.T) {
	host := wiki.NewMemoryHost()
	host.AddWiki(wiki.Wiki{ID: 20, CourseID: 1, Mode: wiki.ModeIndividual})
	host.AddSubwiki(wiki.Subwiki{ID: 200, WikiID: 20, UserID: 42})
	host.AddSubwiki(wiki.Subwiki{ID: 201, WikiID: 20, UserID: 43})
	host.AddPage(wiki.Page{ID: 7, SubwikiID: 200, Title: "Mine"})
	host.AddPage(wiki.Page{ID: 8, SubwikiID: 201, Title: "Theirs"})
	host.TagPage(7, 11, "notes")
	host.TagPage(8, 12, "other")

	collector := wiki.NewTagCollector(host, host, host)

	tags, err := collector.WikiPageTags(context.Background(), 20, wiki.User{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{11: "notes"}, tags, "only the user's own partition is visible")
}

func TestTagCollector_CollaborativeModeIgnoresUser(t *testing.T) {
	host := collaborativeHost()
	collector := wiki.NewTagCollector(host, host, host)

	a, err := collector.WikiPageTags(context.Background(), 10, wiki.User{ID: 42})
	require.NoError(t, err)
	b, err := collector.WikiPageTags(context.Background(), 10, wiki.User{ID: 43})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTagCollector_ResolveSubwiki_GroupPartition(t *testing.T) {
	host := wiki.NewMemoryHost()
	host.AddWiki(wiki.Wiki{ID: 30, CourseID: 1, Mode: wiki.ModeCollaborative})
	host.AddSubwiki(wiki.Subwiki{ID: 300, WikiID: 30, GroupID: 0})
	host.AddSubwiki(wiki.Subwiki{ID: 301, WikiID: 30, GroupID: 7})

	collector := wiki.NewTagCollector(host, host, host)

	sw, err := collector.ResolveSubwiki(context.Background(), 30, wiki.User{ID: 42, GroupID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(301), sw.ID)

	sw, err = collector.ResolveSubwiki(context.Background(), 30, wiki.User{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(300), sw.ID)
}
