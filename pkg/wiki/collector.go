package wiki

import (
	"context"
	"fmt"
)

// TagCollector gathers the tag vocabulary of a whole wiki, resolved to the
// subwiki partition the acting user actually sees. It backs the tag selector
// of the association editor and the tags remote procedure.
type TagCollector struct {
	wikis Source
	pages PageSource
	tags  TagSource
}

func NewTagCollector(wikis Source, pages PageSource, tags TagSource) *TagCollector {
	return &TagCollector{wikis: wikis, pages: pages, tags: tags}
}

// WikiPageTags resolves the wiki's partition for the user and merges the tag
// maps of every page in it. When two pages carry the same tag id the first
// page's text wins.
func (c *TagCollector) WikiPageTags(ctx context.Context, wikiID int64, user User) (map[int64]string, error) {
	w, err := c.wikis.WikiByID(ctx, wikiID)
	if err != nil {
		return nil, fmt.Errorf("resolve wiki %d: %w", wikiID, err)
	}

	// Individual wikis are partitioned per user; collaborative ones per group.
	userID := int64(0)
	if w.Mode == ModeIndividual {
		userID = user.ID
	}

	sw, err := c.wikis.Subwiki(ctx, w.ID, user.GroupID, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve subwiki for wiki %d: %w", wikiID, err)
	}

	pages, err := c.pages.PageList(ctx, sw.ID)
	if err != nil {
		return nil, fmt.Errorf("list pages of subwiki %d: %w", sw.ID, err)
	}

	merged := make(map[int64]string)
	for _, p := range pages {
		tags, err := c.tags.PageTags(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("tags of page %d: %w", p.ID, err)
		}
		for id, text := range tags {
			if _, ok := merged[id]; !ok {
				merged[id] = text
			}
		}
	}

	return merged, nil
}

// ResolveSubwiki exposes the partition resolution on its own for the view
// endpoint, which needs the subwiki before it can pick a page.
func (c *TagCollector) ResolveSubwiki(ctx context.Context, wikiID int64, user User) (Subwiki, error) {
	w, err := c.wikis.WikiByID(ctx, wikiID)
	if err != nil {
		return Subwiki{}, fmt.Errorf("resolve wiki %d: %w", wikiID, err)
	}

	userID := int64(0)
	if w.Mode == ModeIndividual {
		userID = user.ID
	}

	return c.wikis.Subwiki(ctx, w.ID, user.GroupID, userID)
}
