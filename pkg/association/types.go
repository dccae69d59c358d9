package association

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Association is one stored (role, tag) visibility rule scoped to a filter
// instance. The wiki id is denormalized from the owning instance for query
// convenience. An association is meaningless without its owning instance;
// deleting the instance deletes its associations.
type Association struct {
	ID       int64
	RoleID   int64
	TagID    int64
	WikiID   int64
	FilterID int64

	CreatedAt time.Time
}

// New validates and constructs an association. All referenced ids must be
// positive; the row id is assigned by the store.
func New(roleID, tagID, wikiID, filterID int64) (Association, error) {
	if roleID <= 0 || tagID <= 0 || wikiID <= 0 || filterID <= 0 {
		return Association{}, fmt.Errorf("%w: role=%d tag=%d wiki=%d filter=%d",
			ErrInvalidAssociation, roleID, tagID, wikiID, filterID)
	}
	return Association{RoleID: roleID, TagID: tagID, WikiID: wikiID, FilterID: filterID}, nil
}

// Pair is the in-memory form of one role/tag link, decoupled from the
// "roleId-tagId" wire encoding used by the submitted form field.
type Pair struct {
	RoleID int64
	TagID  int64
}

// Token renders the pair in its wire format.
func (p Pair) Token() string {
	return strconv.FormatInt(p.RoleID, 10) + "-" + strconv.FormatInt(p.TagID, 10)
}

// ParsePair parses a "roleId-tagId" token. The token must split on a literal
// '-' into exactly two positive integer components.
func ParsePair(token string) (Pair, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("%w: %q", ErrMalformedPair, token)
	}

	roleID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || roleID <= 0 {
		return Pair{}, fmt.Errorf("%w: %q", ErrMalformedPair, token)
	}

	tagID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || tagID <= 0 {
		return Pair{}, fmt.Errorf("%w: %q", ErrMalformedPair, token)
	}

	return Pair{RoleID: roleID, TagID: tagID}, nil
}

// ParsePairs parses a full token batch. A single malformed token rejects the
// whole batch so a replace never persists a partially valid association set.
func ParsePairs(tokens []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(tokens))
	for _, token := range tokens {
		p, err := ParsePair(token)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// RoleTagSet maps a role id to the set of tag ids associated with it for one
// filter instance. It is derived from stored associations at read time and
// never persisted.
type RoleTagSet map[int64][]int64

// TagsFor returns the tag ids associated with the role, or nil when the role
// has no entry. A role with no associated tags is absent from the set.
func (s RoleTagSet) TagsFor(roleID int64) []int64 {
	return s[roleID]
}

// Intersects reports whether the role's tag set shares at least one tag id
// with the given page tags. Tag ids that no longer exist on any page are
// simply never matched.
func (s RoleTagSet) Intersects(roleID int64, pageTags []int64) bool {
	for _, tagID := range s[roleID] {
		if slices.Contains(pageTags, tagID) {
			return true
		}
	}
	return false
}

// parseGrouped converts the comma-joined tag-id string produced by the SQL
// aggregate into the in-memory set form. The string encoding exists only at
// that serialization boundary.
func parseGrouped(roleID int64, joined string) ([]int64, error) {
	parts := strings.Split(joined, ",")
	tags := make([]int64, 0, len(parts))
	for _, part := range parts {
		tagID, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: role %d: %q", ErrMalformedTagList, roleID, joined)
		}
		tags = append(tags, tagID)
	}
	return tags, nil
}
