package wiki

// Mode is the host wiki's collaboration mode. It decides which user the
// subwiki partition is resolved for.
type Mode string

const (
	// ModeCollaborative shares one subwiki per group.
	ModeCollaborative Mode = "collaborative"
	// ModeIndividual gives every user their own subwiki.
	ModeIndividual Mode = "individual"
)

// Wiki is the host wiki activity a filter instance targets.
type Wiki struct {
	ID       int64
	CourseID int64
	Name     string
	Mode     Mode
}

// Subwiki is the host wiki's sub-partition by group/user context. Visibility
// and tag lookups operate within one subwiki.
type Subwiki struct {
	ID      int64
	WikiID  int64
	GroupID int64
	UserID  int64
}

// Page is a single wiki page as exposed by the host.
type Page struct {
	ID        int64
	SubwikiID int64
	Title     string
	Content   string // rendered HTML cached by the host
	First     bool   // the wiki's front page
}

// Role is a course role held by a user, in the order the host returns them.
type Role struct {
	ID   int64
	Name string
}

// User is the acting user as resolved by the host session layer. Admin marks
// the administrative override capability: admins see every page regardless of
// associations.
type User struct {
	ID      int64
	GroupID int64
	Admin   bool
}
