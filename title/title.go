// Package title defines the domain models for content titles returned by service integrations.
package title

import "github.com/strand-dl/strand/util"

// Title is the common surface of every content entry a service can return.
// Concrete kinds are Movie and Episode; services return them grouped in a Titles set.
type Title interface {
	// TitleID returns the service-scoped identifier of the entry.
	TitleID() string

	// TitleName returns the primary display name of the entry.
	TitleName() string

	// FileName returns a filesystem-safe name for the entry.
	FileName() string

	String() string
}

// Titles groups the entries a service resolved for one TITLE argument.
// Exactly one of Movies or Series is expected to be populated; the original
// service contract returns either a movie listing or a series of episodes.
type Titles struct {
	Movies Movies `json:"movies,omitempty"`
	Series Series `json:"series,omitempty"`
}

// All flattens the set into a single ordered slice.
func (t *Titles) All() []Title {
	out := make([]Title, 0, len(t.Movies)+len(t.Series))
	for _, m := range t.Movies {
		out = append(out, m)
	}
	for _, e := range t.Series {
		out = append(out, e)
	}
	return out
}

// Len returns the total number of entries in the set.
func (t *Titles) Len() int {
	return len(t.Movies) + len(t.Series)
}

// Empty reports whether the set holds no entries.
func (t *Titles) Empty() bool {
	return t.Len() == 0
}

// sanitized is shared by the FileName implementations.
func sanitized(name string) string {
	return util.SanitizeFilename(name)
}
