package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.categories.List(ctx, false)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Println("No categories.")
		return nil
	}
	for _, c := range cats {
		fmt.Printf("  %-20s %s\n", c.Slug, c.Name)
	}
	return nil
}

func (a *App) Contact(ctx context.Context) error {
	msg := models.ContactMessage{}
	var err error

	if u := a.auth.CurrentUser(); u != nil {
		msg.Name, msg.Email = u.Name, u.Email
	} else {
		if msg.Name, err = GetSimpleText(a.reader, "Your name", os.Stdout); err != nil {
			return err
		}
		if msg.Email, err = GetSimpleText(a.reader, "Your email", os.Stdout); err != nil {
			return err
		}
	}
	if msg.Subject, err = GetSimpleText(a.reader, "Subject", os.Stdout); err != nil {
		return err
	}
	if msg.Message, err = GetMultiline(a.reader, "Message", os.Stdout); err != nil {
		return err
	}

	if err := a.contacts.Submit(ctx, msg); err != nil {
		return err
	}
	fmt.Println("Message sent.")
	return nil
}

func (a *App) SharedWithMe(ctx context.Context) error {
	docs, err := a.shares.SharedDocuments(ctx)
	if err != nil {
		return err
	}
	lecs, err := a.shares.SharedLectures(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 && len(lecs) == 0 {
		fmt.Println("Nothing shared with you.")
		return nil
	}
	if len(docs) > 0 {
		fmt.Println("Documents:")
		printDocuments(docs)
	}
	if len(lecs) > 0 {
		fmt.Println("Lectures:")
		printLectures(lecs)
	}
	return nil
}

func (a *App) Share(ctx context.Context) error {
	kind, err := GetSimpleText(a.reader, "Share a document or a lecture? (document/lecture)", os.Stdout)
	if err != nil {
		return err
	}
	id, err := GetSimpleText(a.reader, "Item ID", os.Stdout)
	if err != nil {
		return err
	}
	userID, err := GetSimpleText(a.reader, "User ID to share with", os.Stdout)
	if err != nil {
		return err
	}

	switch kind {
	case "document":
		err = a.shares.ShareDocument(ctx, id, userID)
	case "lecture":
		err = a.shares.ShareLecture(ctx, id, userID)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}
	fmt.Println("Shared.")
	return nil
}
