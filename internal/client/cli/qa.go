package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/studyhub/studyhub-cli/internal/client/models"
)

func (a *App) Questions(ctx context.Context) error {
	qs, err := a.qa.Published(ctx)
	if err != nil {
		return err
	}
	printQuestions(qs)
	return nil
}

func (a *App) ShowQuestion(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Question ID", os.Stdout)
	if err != nil {
		return err
	}
	q, err := a.qa.Question(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("[%s] %s\n%s\n", q.Status, q.Title, q.Content)
	if len(q.Tags) > 0 {
		fmt.Println("tags:", strings.Join(q.Tags, ", "))
	}
	for _, ans := range q.Answers {
		fmt.Printf("  answer %s [%s]:\n    %s\n", ans.ID, ans.Status, ans.Content)
	}
	return nil
}

func (a *App) SearchQuestions(ctx context.Context) error {
	query, err := GetSimpleText(a.reader, "Search text (optional)", os.Stdout)
	if err != nil {
		return err
	}
	tag, err := GetSimpleText(a.reader, "Tag (optional)", os.Stdout)
	if err != nil {
		return err
	}

	qs, pg, err := a.qa.Search(ctx, models.ListQuery{
		Query: query,
		Tag:   tag,
		Page:  1,
		Limit: defaultPageSize,
	})
	if err != nil {
		return err
	}
	printQuestions(qs)
	if pg != nil && pg.TotalPages > 1 {
		fmt.Printf("Page %d of %d\n", pg.Page, pg.TotalPages)
	}
	return nil
}

func (a *App) AskQuestion(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Question", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags, comma separated (optional)", os.Stdout)
	if err != nil {
		return err
	}

	up := models.QuestionUpload{Title: title, Content: content}
	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			up.Tags = append(up.Tags, strings.TrimSpace(tag))
		}
	}

	q, err := a.qa.AskQuestion(ctx, up)
	if err != nil {
		return err
	}
	fmt.Printf("Posted question %s (status %s)\n", q.ID, q.Status)
	return nil
}

func (a *App) AnswerQuestion(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Question ID", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Answer", os.Stdout)
	if err != nil {
		return err
	}

	ans, err := a.qa.PostAnswer(ctx, models.AnswerUpload{QuestionID: id, Content: content})
	if err != nil {
		return err
	}
	fmt.Printf("Posted answer %s (status %s)\n", ans.ID, ans.Status)
	return nil
}

func (a *App) MyQA(ctx context.Context) error {
	qs, err := a.qa.Mine(ctx)
	if err != nil {
		return err
	}
	printQuestions(qs)
	return nil
}

func printQuestions(qs []models.Question) {
	if len(qs) == 0 {
		fmt.Println("No questions.")
		return
	}
	for _, q := range qs {
		fmt.Printf("  %s  [%-9s] %s (%d answers)\n", q.ID, q.Status, q.Title, len(q.Answers))
	}
}
