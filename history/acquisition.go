package history

import (
	"fmt"
	"time"

	"github.com/strand-dl/strand/title"
)

// SavedAcquisition represents a single acquired title preserved in the user's history.
type SavedAcquisition struct {
	ServiceTag string    `json:"service_tag"`
	TitleID    string    `json:"title_id"`
	TitleName  string    `json:"title_name"`
	Display    string    `json:"display"`
	Tracks     int       `json:"tracks"`
	Protected  bool      `json:"protected"`
	AcquiredAt time.Time `json:"acquired_at"`
}

func (s *SavedAcquisition) encode() string {
	return fmt.Sprintf("%s (%s)", s.Display, s.ServiceTag)
}

func (s *SavedAcquisition) String() string {
	return fmt.Sprintf("%s [%s]", s.Display, s.ServiceTag)
}

func newSavedAcquisition(tag string, t title.Title, tracks int, protected bool) *SavedAcquisition {
	return &SavedAcquisition{
		ServiceTag: tag,
		TitleID:    t.TitleID(),
		TitleName:  t.TitleName(),
		Display:    t.String(),
		Tracks:     tracks,
		Protected:  protected,
		AcquiredAt: time.Now(),
	}
}
