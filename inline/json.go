// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
)

type Entry struct {
	// Service is the tag of the integration that produced the entry.
	Service string `json:"service"`
	// Title is the resolved title object.
	Title title.Title `json:"title"`
	// Tracks is the title's track listing (optional).
	Tracks *track.Tracks `json:"tracks,omitempty"`
	// Chapters is the title's chapter listing (optional).
	Chapters track.Chapters `json:"chapters,omitempty"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Entry `json:"result"`
}

func asJson(entries []*Entry, query string) ([]byte, error) {
	if entries == nil {
		entries = []*Entry{}
	}
	return json.Marshal(&Output{
		Query:  query,
		Result: entries,
	})
}

// Schema returns the JSON Schema of the inline output document.
func Schema() ([]byte, error) {
	schema := jsonschema.Reflect(&Output{})
	return json.MarshalIndent(schema, "", "  ")
}
