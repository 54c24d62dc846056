package api

import (
	"context"
	"net/http"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

// SubmitContact sends a contact-form message. This is a public endpoint;
// it still flows through the shared transport for logging and request IDs.
func (c *HTTPClient) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/contacts", msg, nil)
}
