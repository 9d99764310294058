package title

import "fmt"

// Movie represents a standalone feature-length title.
type Movie struct {
	// Service-scoped identifier (e.g. an asset or playback ID).
	ID string `json:"id"`
	// Display name (e.g. "Some Film").
	Name string `json:"name"`
	// Release year, zero when unknown.
	Year int `json:"year,omitempty"`
	// Original language (BCP-47).
	Language string `json:"language,omitempty"`
	// Short synopsis, often empty.
	Description string `json:"description,omitempty"`

	// Service-private payload carried between hook calls.
	// Never inspected by the host.
	Data map[string]any `json:"-"`
}

func (m *Movie) TitleID() string {
	return m.ID
}

func (m *Movie) TitleName() string {
	return m.Name
}

// String returns the canonical display form, e.g. "Some Film (2017)".
func (m *Movie) String() string {
	if m.Year == 0 {
		return m.Name
	}
	return fmt.Sprintf("%s (%d)", m.Name, m.Year)
}

// FileName returns a filesystem-safe rendition of String().
func (m *Movie) FileName() string {
	return sanitized(m.String())
}

// Movies is an ordered movie listing.
type Movies []*Movie
