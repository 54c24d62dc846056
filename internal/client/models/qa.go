package models

import "time"

// Question statuses as returned by the backend forum endpoints.
const (
	QuestionStatusPending   = "pending"
	QuestionStatusPublished = "published"
	QuestionStatusClosed    = "closed"
)

type Question struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Status    string    `json:"status"`
	AuthorID  string    `json:"authorId"`
	Answers   []Answer  `json:"answers,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Answer struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	AuthorID   string    `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Attachment is a named file body uploaded alongside a question or answer.
type Attachment struct {
	Name string
	Data []byte
}

// QuestionUpload is the client-side form for posting a question.
type QuestionUpload struct {
	Title       string
	Content     string
	Tags        []string
	Attachments []Attachment
}

// AnswerUpload is the client-side form for posting an answer.
type AnswerUpload struct {
	QuestionID  string
	Content     string
	Attachments []Attachment
}
