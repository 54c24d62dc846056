package models

import "time"

// Pagination describes the paging block returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListQuery carries common list-endpoint parameters.
type ListQuery struct {
	Query string
	Tag   string
	Kind  string
	Mine  bool
	Page  int
	Limit int
}

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	FileName    string    `json:"fileName,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DocumentUpload is the client-side form for creating or updating a
// document. File is the raw attachment body; empty means "no file change".
type DocumentUpload struct {
	Title        string
	Description  string
	Category     string
	Keywords     []string
	IsPublic     *bool
	AllowedUsers []string
	FileName     string
	File         []byte
}

type Lecture struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	VideoName   string    `json:"videoName,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LectureUpload mirrors DocumentUpload with a video attachment instead of
// a generic file.
type LectureUpload struct {
	Title        string
	Description  string
	Category     string
	Keywords     []string
	IsPublic     *bool
	AllowedUsers []string
	VideoName    string
	Video        []byte
}

type Collection struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IsPublic    bool             `json:"isPublic"`
	CoverName   string           `json:"coverName,omitempty"`
	ItemCount   int              `json:"itemCount"`
	Items       []CollectionItem `json:"items,omitempty"`
	OwnerID     string           `json:"ownerId"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CollectionItem is one entry of a collection, in display order. Kind is
// SavedKindDocument or SavedKindLecture; Ref points at the underlying item.
type CollectionItem struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Ref   string `json:"ref"`
	Title string `json:"title,omitempty"`
}

// CollectionItemInput describes an item to add to a collection.
type CollectionItemInput struct {
	Kind          string `json:"kind"`
	Ref           string `json:"ref"`
	TitleOverride string `json:"titleOverride,omitempty"`
}

type CollectionUpload struct {
	Name        string
	Description string
	IsPublic    *bool
	CoverName   string
	Cover       []byte
}

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

// ContactMessage is the public contact-form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Share links a document or lecture to a user it was shared with.
type Share struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
