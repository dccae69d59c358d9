package backup

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/instance"
)

// Archive is the XML document for one filter instance and its association
// rows. The element and field names match the host's activity backup format,
// so archives stay exchangeable with it: ids are attributes, everything else
// is a child element, timestamps are unix seconds.
type Archive struct {
	XMLName      xml.Name `xml:"wikifilter"`
	ID           int64    `xml:"id,attr"`
	Course       int64    `xml:"course"`
	Wiki         int64    `xml:"wiki"`
	Name         string   `xml:"name"`
	TimeCreated  int64    `xml:"timecreated"`
	TimeModified int64    `xml:"timemodified"`
	Intro        string   `xml:"intro"`
	IntroFormat  int      `xml:"introformat"`
	Associations []Row    `xml:"associations>association"`
}

// Row is one archived association.
type Row struct {
	ID       int64 `xml:"id,attr"`
	RoleID   int64 `xml:"role_id"`
	TagID    int64 `xml:"tag_id"`
	WikiID   int64 `xml:"wiki_id"`
	FilterID int64 `xml:"wikifilter_id"`
}

// NewArchive snapshots an instance and its association rows into a document.
func NewArchive(inst instance.Instance, rows []association.Association) Archive {
	a := Archive{
		ID:           inst.ID,
		Course:       inst.CourseID,
		Wiki:         inst.WikiID,
		Name:         inst.Name,
		TimeCreated:  inst.TimeCreated.Unix(),
		TimeModified: inst.TimeModified.Unix(),
		Intro:        inst.Intro,
		IntroFormat:  int(inst.IntroFormat),
	}
	for _, r := range rows {
		a.Associations = append(a.Associations, Row{
			ID:       r.ID,
			RoleID:   r.RoleID,
			TagID:    r.TagID,
			WikiID:   r.WikiID,
			FilterID: r.FilterID,
		})
	}
	return a
}

// Marshal renders the document with an XML header and indentation.
func (a Archive) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Unmarshal decodes and validates an archive document.
func Unmarshal(data []byte) (Archive, error) {
	var a Archive
	if err := xml.Unmarshal(data, &a); err != nil {
		return Archive{}, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	if a.Course <= 0 || a.Wiki <= 0 || a.Name == "" {
		return Archive{}, fmt.Errorf("%w: missing course, wiki or name", ErrInvalidArchive)
	}
	return a, nil
}

// Instance rebuilds the instance record carried by the archive, keeping its
// original ids and timestamps. Import strips these before insertion.
func (a Archive) Instance() instance.Instance {
	return instance.Instance{
		ID:           a.ID,
		CourseID:     a.Course,
		WikiID:       a.Wiki,
		Name:         a.Name,
		Intro:        a.Intro,
		IntroFormat:  instance.IntroFormat(a.IntroFormat),
		TimeCreated:  time.Unix(a.TimeCreated, 0).UTC(),
		TimeModified: time.Unix(a.TimeModified, 0).UTC(),
	}
}

// Pairs returns the archived role/tag pairs, the input of the association
// store's Replace.
func (a Archive) Pairs() []association.Pair {
	pairs := make([]association.Pair, 0, len(a.Associations))
	for _, r := range a.Associations {
		pairs = append(pairs, association.Pair{RoleID: r.RoleID, TagID: r.TagID})
	}
	return pairs
}
