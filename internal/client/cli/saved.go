package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

var savedKinds = []string{
	models.SavedKindQuestion,
	models.SavedKindDocument,
	models.SavedKindLecture,
	models.SavedKindCollection,
}

func validSavedKind(kind string) bool {
	for _, k := range savedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (a *App) SavedItems(ctx context.Context) error {
	kind, err := GetSimpleText(a.reader, "Kind (question/document/lecture/collection, Enter for all)", os.Stdout)
	if err != nil {
		return err
	}
	if kind != "" && !validSavedKind(kind) {
		return fmt.Errorf("unknown kind %q", kind)
	}

	items, _, err := a.saved.List(ctx, kind, 1, defaultPageSize)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing saved.")
		return nil
	}
	for _, it := range items {
		fmt.Printf("  %-10s %s  %s\n", it.Kind, it.Ref, it.Title)
	}
	return nil
}

func (a *App) SaveItem(ctx context.Context) error {
	kind, ref, err := a.promptSavedRef()
	if err != nil {
		return err
	}
	if err := a.saved.Save(ctx, kind, ref); err != nil {
		return err
	}
	fmt.Println("Saved.")
	return nil
}

func (a *App) UnsaveItem(ctx context.Context) error {
	kind, ref, err := a.promptSavedRef()
	if err != nil {
		return err
	}
	if err := a.saved.Remove(ctx, kind, ref); err != nil {
		return err
	}
	fmt.Println("Removed.")
	return nil
}

func (a *App) promptSavedRef() (kind, ref string, err error) {
	kind, err = GetSimpleText(a.reader, "Kind (question/document/lecture/collection)", os.Stdout)
	if err != nil {
		return "", "", err
	}
	if !validSavedKind(kind) {
		return "", "", fmt.Errorf("unknown kind %q", kind)
	}
	ref, err = GetSimpleText(a.reader, "Item ID", os.Stdout)
	if err != nil {
		return "", "", err
	}
	return kind, ref, nil
}
