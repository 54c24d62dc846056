package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

func (a *App) ListCollections(ctx context.Context) error {
	mine := false
	if a.isLoggedIn() {
		var err error
		mine, err = GetBool(a.reader, "Only my collections?", false, os.Stdout)
		if err != nil {
			return err
		}
	}

	cols, pg, err := a.collections.List(ctx, mine, 1, defaultPageSize)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		fmt.Println("No collections.")
		return nil
	}
	for _, c := range cols {
		fmt.Printf("  %s  %s (%d items)\n", c.ID, c.Name, c.ItemCount)
	}
	if pg != nil && pg.TotalPages > 1 {
		fmt.Printf("Page %d of %d\n", pg.Page, pg.TotalPages)
	}
	return nil
}

func (a *App) CreateCollection(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	public, err := GetBool(a.reader, "Make it public?", false, os.Stdout)
	if err != nil {
		return err
	}

	col, err := a.collections.Create(ctx, models.CollectionUpload{
		Name:        name,
		Description: description,
		IsPublic:    &public,
	})
	if err != nil {
		return err
	}
	fmt.Println("Created collection", col.ID)
	return nil
}

func (a *App) ShowCollection(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Collection ID", os.Stdout)
	if err != nil {
		return err
	}
	col, err := a.collections.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", col.Name, col.Description)
	if len(col.Items) == 0 {
		fmt.Println("No items.")
		return nil
	}
	for _, it := range col.Items {
		fmt.Printf("  %s  [%-8s] %s (%s)\n", it.ID, it.Kind, it.Title, it.Ref)
	}
	return nil
}

// itemKind prompts until the user names a kind a collection can hold.
func (a *App) itemKind() (string, error) {
	kind, err := GetSimpleText(a.reader, "Kind (document/lecture)", os.Stdout)
	if err != nil {
		return "", err
	}
	if kind != models.SavedKindDocument && kind != models.SavedKindLecture {
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	return kind, nil
}

func (a *App) AddCollectionItem(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Collection ID", os.Stdout)
	if err != nil {
		return err
	}
	kind, err := a.itemKind()
	if err != nil {
		return err
	}
	ref, err := GetSimpleText(a.reader, "Item ID", os.Stdout)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Title override (optional)", os.Stdout)
	if err != nil {
		return err
	}

	err = a.collections.AddItems(ctx, id, []models.CollectionItemInput{
		{Kind: kind, Ref: ref, TitleOverride: title},
	})
	if err != nil {
		return err
	}
	fmt.Println("Added.")
	return nil
}

func (a *App) RemoveCollectionItem(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Collection ID", os.Stdout)
	if err != nil {
		return err
	}
	itemID, err := GetSimpleText(a.reader, "Item ID", os.Stdout)
	if err != nil {
		return err
	}
	kind, err := a.itemKind()
	if err != nil {
		return err
	}

	if err := a.collections.RemoveItem(ctx, id, itemID, kind); err != nil {
		return err
	}
	fmt.Println("Removed.")
	return nil
}

func (a *App) ReorderCollectionItems(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Collection ID", os.Stdout)
	if err != nil {
		return err
	}
	kind, err := a.itemKind()
	if err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "Item IDs in the new order, comma separated", os.Stdout)
	if err != nil {
		return err
	}

	var order []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			order = append(order, part)
		}
	}
	if len(order) == 0 {
		return fmt.Errorf("no item IDs given")
	}

	if err := a.collections.Reorder(ctx, id, kind, order); err != nil {
		return err
	}
	fmt.Println("Reordered.")
	return nil
}
