package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

const defaultPageSize = 20

func (a *App) PublicDocuments(ctx context.Context) error {
	page, err := GetInt(a.reader, "Page (Enter for 1)", 1, os.Stdout)
	if err != nil {
		return err
	}

	docs, pg, err := a.documents.Public(ctx, page, defaultPageSize)
	if err != nil {
		return err
	}
	printDocuments(docs)
	if pg != nil {
		fmt.Printf("Page %d of %d (%d documents)\n", pg.Page, pg.TotalPages, pg.Total)
	}
	return nil
}

func (a *App) MyDocuments(ctx context.Context) error {
	docs, err := a.documents.Mine(ctx)
	if err != nil {
		return err
	}
	printDocuments(docs)
	return nil
}

func (a *App) UploadDocument(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category (optional)", os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Path to file", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	public, err := GetBool(a.reader, "Make it public?", true, os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.documents.Upload(ctx, models.DocumentUpload{
		Title:       title,
		Description: description,
		Category:    category,
		IsPublic:    &public,
		FileName:    filepath.Base(path),
		File:        data,
	})
	if err != nil {
		return err
	}
	fmt.Println("Uploaded document", doc.ID)
	return nil
}

func (a *App) ShowDocument(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Document ID", os.Stdout)
	if err != nil {
		return err
	}
	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n  id: %s\n  public: %t\n  description: %s\n", doc.Title, doc.ID, doc.IsPublic, doc.Description)
	return nil
}

func (a *App) DownloadDocument(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Document ID", os.Stdout)
	if err != nil {
		return err
	}
	target, err := GetSimpleText(a.reader, "Save as", os.Stdout)
	if err != nil {
		return err
	}

	data, err := a.documents.Download(ctx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(data), target)
	return nil
}

func (a *App) DeleteDocument(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Document ID", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := GetBool(a.reader, "Delete "+id+"?", false, os.Stdout)
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Println("Canceled.")
		return nil
	}
	if err := a.documents.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func printDocuments(docs []models.Document) {
	if len(docs) == 0 {
		fmt.Println("No documents.")
		return
	}
	for _, d := range docs {
		visibility := "private"
		if d.IsPublic {
			visibility = "public"
		}
		fmt.Printf("  %s  %-10s %s\n", d.ID, visibility, strings.TrimSpace(d.Title))
	}
}
