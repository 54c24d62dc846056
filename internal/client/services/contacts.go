package services

import (
	"context"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

type contactsAPI interface {
	SubmitContact(ctx context.Context, msg models.ContactMessage) error
}

// ContactsService sends feedback messages to the site operators.
type ContactsService interface {
	Submit(ctx context.Context, msg models.ContactMessage) error
}

type contactsService struct {
	api contactsAPI
}

func NewContactsService(api contactsAPI) ContactsService {
	return &contactsService{api: api}
}

func (s *contactsService) Submit(ctx context.Context, msg models.ContactMessage) error {
	return s.api.SubmitContact(ctx, msg)
}
