package instance

import (
	"fmt"
	"time"
)

// IntroFormat identifies the markup of the instance description, mirroring
// the host's text format codes.
type IntroFormat int

const (
	FormatHost     IntroFormat = 0 // host's native rich-text format
	FormatHTML     IntroFormat = 1
	FormatPlain    IntroFormat = 2
	FormatMarkdown IntroFormat = 4
)

// Instance is one configured filter bound to one course and one target wiki.
// It exclusively owns its associations: deleting the instance deletes them.
type Instance struct {
	ID           int64
	CourseID     int64
	WikiID       int64
	Name         string
	Intro        string
	IntroFormat  IntroFormat
	TimeCreated  time.Time
	TimeModified time.Time
}

// Validate checks the fields required at creation time. The id and timestamps
// are assigned by the store.
func (i Instance) Validate() error {
	if i.CourseID <= 0 {
		return fmt.Errorf("%w: course id %d", ErrInvalidInstance, i.CourseID)
	}
	if i.WikiID <= 0 {
		return fmt.Errorf("%w: wiki id %d", ErrInvalidInstance, i.WikiID)
	}
	if i.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstance)
	}
	return nil
}
