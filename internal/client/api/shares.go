package api

import (
	"context"
	"net/http"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type shareRequest struct {
	DocumentID string `json:"documentId,omitempty"`
	LectureID  string `json:"lectureId,omitempty"`
	UserID     string `json:"userId"`
}

type shareListResponse struct {
	Shares []models.Share `json:"shares"`
}

type sharedDocumentsResponse struct {
	Documents []models.Document `json:"documents"`
}

type sharedLecturesResponse struct {
	Lectures []models.Lecture `json:"lectures"`
}

// ShareDocument grants a user access to a private document.
func (c *HTTPClient) ShareDocument(ctx context.Context, documentID, userID string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/document-shares",
		shareRequest{DocumentID: documentID, UserID: userID}, nil)
}

// SharedDocuments lists documents other users shared with the caller.
func (c *HTTPClient) SharedDocuments(ctx context.Context) ([]models.Document, error) {
	var resp sharedDocumentsResponse
	if err := c.getJSON(ctx, "/api/document-shares/shared-with-me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// DocumentShares lists the users a document is shared with.
func (c *HTTPClient) DocumentShares(ctx context.Context, documentID string) ([]models.Share, error) {
	var resp shareListResponse
	if err := c.getJSON(ctx, "/api/document-shares/by-document/"+documentID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Shares, nil
}

// RevokeDocumentShare removes a user's access to a shared document.
func (c *HTTPClient) RevokeDocumentShare(ctx context.Context, shareID string) error {
	return c.delete(ctx, "/api/document-shares/"+shareID)
}

// ShareLecture grants a user access to a private lecture.
func (c *HTTPClient) ShareLecture(ctx context.Context, lectureID, userID string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/lecture-shares",
		shareRequest{LectureID: lectureID, UserID: userID}, nil)
}

// SharedLectures lists lectures other users shared with the caller.
func (c *HTTPClient) SharedLectures(ctx context.Context) ([]models.Lecture, error) {
	var resp sharedLecturesResponse
	if err := c.getJSON(ctx, "/api/lecture-shares", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lectures, nil
}

// LectureShares lists the users a lecture is shared with.
func (c *HTTPClient) LectureShares(ctx context.Context, lectureID string) ([]models.Share, error) {
	var resp shareListResponse
	if err := c.getJSON(ctx, "/api/lecture-shares/by-lecture/"+lectureID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Shares, nil
}

// RevokeLectureShare removes a user's access to a shared lecture.
func (c *HTTPClient) RevokeLectureShare(ctx context.Context, shareID string) error {
	return c.delete(ctx, "/api/lecture-shares/"+shareID)
}
