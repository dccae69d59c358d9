package wiki

import (
	"context"
	"slices"
	"sync"
)

// MemoryHost is an in-memory stand-in for the host application, implementing
// every collaborator interface. It backs the package tests and lets the
// filter be exercised end-to-end without a host deployment.
type MemoryHost struct {
	mu       sync.RWMutex
	wikis    map[int64]Wiki
	subwikis []Subwiki
	pages    map[int64]Page
	pageTags map[int64]map[int64]string
	roles    map[int64]map[int64][]Role // courseID → userID → roles
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		wikis:    make(map[int64]Wiki),
		pages:    make(map[int64]Page),
		pageTags: make(map[int64]map[int64]string),
		roles:    make(map[int64]map[int64][]Role),
	}
}

func (h *MemoryHost) AddWiki(w Wiki) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wikis[w.ID] = w
}

func (h *MemoryHost) AddSubwiki(sw Subwiki) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subwikis = append(h.subwikis, sw)
}

func (h *MemoryHost) AddPage(p Page) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pages[p.ID] = p
}

// TagPage attaches a tag to a page, replacing any previous text for the id.
func (h *MemoryHost) TagPage(pageID, tagID int64, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pageTags[pageID] == nil {
		h.pageTags[pageID] = make(map[int64]string)
	}
	h.pageTags[pageID][tagID] = text
}

// AssignRole records a course role for a user. Roles keep assignment order.
func (h *MemoryHost) AssignRole(courseID, userID int64, r Role) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.roles[courseID] == nil {
		h.roles[courseID] = make(map[int64][]Role)
	}
	h.roles[courseID][userID] = append(h.roles[courseID][userID], r)
}

func (h *MemoryHost) WikiByID(ctx context.Context, wikiID int64) (Wiki, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, ok := h.wikis[wikiID]
	if !ok {
		return Wiki{}, ErrWikiNotFound
	}
	return w, nil
}

func (h *MemoryHost) Subwiki(ctx context.Context, wikiID, groupID, userID int64) (Subwiki, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sw := range h.subwikis {
		if sw.WikiID == wikiID && sw.GroupID == groupID && sw.UserID == userID {
			return sw, nil
		}
	}
	return Subwiki{}, ErrSubwikiNotFound
}

func (h *MemoryHost) PageList(ctx context.Context, subwikiID int64) ([]Page, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []Page
	for _, p := range h.pages {
		if p.SubwikiID == subwikiID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Page) int { return int(a.ID - b.ID) })
	return out, nil
}

func (h *MemoryHost) PageByID(ctx context.Context, pageID int64) (Page, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.pages[pageID]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	return p, nil
}

func (h *MemoryHost) FirstPage(ctx context.Context, subwikiID int64) (Page, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.pages {
		if p.SubwikiID == subwikiID && p.First {
			return p, nil
		}
	}
	return Page{}, ErrPageNotFound
}

func (h *MemoryHost) PageTags(ctx context.Context, pageID int64) (map[int64]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tags := make(map[int64]string, len(h.pageTags[pageID]))
	for id, text := range h.pageTags[pageID] {
		tags[id] = text
	}
	return tags, nil
}

func (h *MemoryHost) UserRoles(ctx context.Context, courseID, userID int64) ([]Role, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	roles := h.roles[courseID][userID]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out, nil
}

var (
	_ Source     = (*MemoryHost)(nil)
	_ PageSource = (*MemoryHost)(nil)
	_ TagSource  = (*MemoryHost)(nil)
	_ RoleSource = (*MemoryHost)(nil)
)
