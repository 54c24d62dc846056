package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error

	PublicDocuments(ctx context.Context) error
	MyDocuments(ctx context.Context) error
	UploadDocument(ctx context.Context) error
	ShowDocument(ctx context.Context) error
	DownloadDocument(ctx context.Context) error
	DeleteDocument(ctx context.Context) error

	PublicLectures(ctx context.Context) error
	MyLectures(ctx context.Context) error
	UploadLecture(ctx context.Context) error

	ListCollections(ctx context.Context) error
	CreateCollection(ctx context.Context) error
	ShowCollection(ctx context.Context) error
	AddCollectionItem(ctx context.Context) error
	RemoveCollectionItem(ctx context.Context) error
	ReorderCollectionItems(ctx context.Context) error

	Questions(ctx context.Context) error
	ShowQuestion(ctx context.Context) error
	SearchQuestions(ctx context.Context) error
	AskQuestion(ctx context.Context) error
	AnswerQuestion(ctx context.Context) error
	MyQA(ctx context.Context) error

	SavedItems(ctx context.Context) error
	SaveItem(ctx context.Context) error
	UnsaveItem(ctx context.Context) error

	Categories(ctx context.Context) error
	Contact(ctx context.Context) error
	SharedWithMe(ctx context.Context) error
	Share(ctx context.Context) error
}

const helpAnonymous = "Available commands: login, docs, lectures, questions, question, search, categories, contact, exit"

const helpLoggedIn = `Available commands:
  session:     whoami, refresh, logout
  documents:   docs, mydocs, upload, showdoc, download, deldoc
  lectures:    lectures, mylectures, uploadlecture
  collections: collections, newcollection, showcol, additem, delitem, reorder
  q&a:         questions, question, search, ask, answer, myqa
  saved:       saved, save, unsave
  sharing:     shared, share
  other:       categories, contact, exit`

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are printed here; handlers stay
// free of presentation concerns beyond their own output.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	handlers := map[string]func(context.Context) error{
		"login":         a.SignIn,
		"logout":        a.SignOut,
		"whoami":        a.WhoAmI,
		"refresh":       a.Refresh,
		"docs":          a.PublicDocuments,
		"mydocs":        a.MyDocuments,
		"upload":        a.UploadDocument,
		"showdoc":       a.ShowDocument,
		"download":      a.DownloadDocument,
		"deldoc":        a.DeleteDocument,
		"lectures":      a.PublicLectures,
		"mylectures":    a.MyLectures,
		"uploadlecture": a.UploadLecture,
		"collections":   a.ListCollections,
		"newcollection": a.CreateCollection,
		"showcol":       a.ShowCollection,
		"additem":       a.AddCollectionItem,
		"delitem":       a.RemoveCollectionItem,
		"reorder":       a.ReorderCollectionItems,
		"questions":     a.Questions,
		"question":      a.ShowQuestion,
		"search":        a.SearchQuestions,
		"ask":           a.AskQuestion,
		"answer":        a.AnswerQuestion,
		"myqa":          a.MyQA,
		"saved":         a.SavedItems,
		"save":          a.SaveItem,
		"unsave":        a.UnsaveItem,
		"categories":    a.Categories,
		"contact":       a.Contact,
		"shared":        a.SharedWithMe,
		"share":         a.Share,
	}

	for {
		printlnFn(fmt.Sprintf("studyhub %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			handler, ok := handlers[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if err := handler(ctx); err != nil {
				printlnFn("Error:", err.Error())
			}
		}
	}
}
