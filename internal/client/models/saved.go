package models

import "time"

// Saved-item kinds accepted by the backend.
const (
	SavedKindQuestion   = "question"
	SavedKindDocument   = "document"
	SavedKindLecture    = "lecture"
	SavedKindCollection = "collection"
)

// SavedItem is a bookmark: a kind plus a reference to the saved entity.
type SavedItem struct {
	Kind    string    `json:"kind"`
	Ref     string    `json:"ref"`
	Title   string    `json:"title,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}
