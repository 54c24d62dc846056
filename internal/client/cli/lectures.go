package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

func (a *App) PublicLectures(ctx context.Context) error {
	page, err := GetInt(a.reader, "Page (Enter for 1)", 1, os.Stdout)
	if err != nil {
		return err
	}

	lecs, pg, err := a.lectures.Public(ctx, page, defaultPageSize)
	if err != nil {
		return err
	}
	printLectures(lecs)
	if pg != nil {
		fmt.Printf("Page %d of %d (%d lectures)\n", pg.Page, pg.TotalPages, pg.Total)
	}
	return nil
}

func (a *App) MyLectures(ctx context.Context) error {
	lecs, err := a.lectures.Mine(ctx)
	if err != nil {
		return err
	}
	printLectures(lecs)
	return nil
}

func (a *App) UploadLecture(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Path to video file", os.Stdout)
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

	lec, err := a.lectures.Upload(ctx, models.LectureUpload{
		Title:       title,
		Description: description,
		IsPublic:    &public,
		VideoName:   filepath.Base(path),
		Video:       data,
	})
	if err != nil {
		return err
	}
	fmt.Println("Uploaded lecture", lec.ID)
	return nil
}

func printLectures(lecs []models.Lecture) {
	if len(lecs) == 0 {
		fmt.Println("No lectures.")
		return
	}
	for _, l := range lecs {
		visibility := "private"
		if l.IsPublic {
			visibility = "public"
		}
		fmt.Printf("  %s  %-10s %s\n", l.ID, visibility, l.Title)
	}
}
