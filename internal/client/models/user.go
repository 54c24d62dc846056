// Package models defines the payload shapes exchanged with the StudyHub
// backend. All fields mirror what the REST API returns; the client treats
// them as opaque data to render.
package models

// User is the identity record returned by the backend after a successful
// login and persisted locally between runs.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}
