package track

import (
	"fmt"
	"sort"
	"time"
)

// Chapter marks a named position on a title's timeline.
type Chapter struct {
	// Display name, e.g. "Chapter 01" or "Intro".
	Name string `json:"name"`
	// Offset from the start of the title.
	Start time.Duration `json:"start"`
}

// Timestamp renders the start offset as "HH:MM:SS.mmm".
func (c *Chapter) Timestamp() string {
	h := int(c.Start.Hours())
	m := int(c.Start.Minutes()) % 60
	s := int(c.Start.Seconds()) % 60
	ms := int(c.Start.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func (c *Chapter) String() string {
	return fmt.Sprintf("%s %s", c.Timestamp(), c.Name)
}

// Chapters is an ordered chapter listing. A service returning no chapters
// yields an empty, non-nil listing.
type Chapters []*Chapter

// Sort orders the listing by start offset.
func (c Chapters) Sort() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Start < c[j].Start
	})
}

// Validate checks the listing invariants: the first chapter starts at zero
// and offsets strictly increase.
func (c Chapters) Validate() error {
	if len(c) == 0 {
		return nil
	}
	if c[0].Start != 0 {
		return fmt.Errorf("chapters: first chapter starts at %s, not zero", c[0].Timestamp())
	}
	for i := 1; i < len(c); i++ {
		if c[i].Start <= c[i-1].Start {
			return fmt.Errorf("chapters: %q does not start after %q", c[i].Name, c[i-1].Name)
		}
	}
	return nil
}

// Numbered renames unnamed chapters to a zero-padded ordinal form.
func (c Chapters) Numbered() {
	for i, ch := range c {
		if ch.Name == "" {
			ch.Name = fmt.Sprintf("Chapter %02d", i+1)
		}
	}
}
