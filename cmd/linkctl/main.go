package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/ramysh/linkylink/pkg/adapters/session"
	"github.com/ramysh/linkylink/pkg/config"
	"github.com/ramysh/linkylink/pkg/core/domain"
	"github.com/ramysh/linkylink/pkg/gateway"
)

const usage = "expected 'login', 'logout', 'whoami', 'list', 'create', 'update', 'delete' or 'export' subcommands"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	gw := gateway.New(cfg.APIBaseURL, &http.Client{})

	path, err := session.DefaultPath()
	if err != nil {
		log.Fatalf("Failed to locate session file: %v", err)
	}
	store := session.NewFileStore(path)

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		doLogin(ctx, gw, store, os.Args[2:])
	case "logout":
		if err := store.Logout(); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		fmt.Println("Logged out")
	case "whoami":
		sess := requireSession(store)
		fmt.Printf("%s (%s)\n", sess.User.Username, sess.User.Role)
	case "list":
		doList(ctx, gw, store, os.Args[2:])
	case "create":
		doCreate(ctx, gw, store, os.Args[2:])
	case "update":
		doUpdate(ctx, gw, store, os.Args[2:])
	case "delete":
		doDelete(ctx, gw, store, os.Args[2:])
	case "export":
		doExport(ctx, gw, store)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func requireSession(store *session.FileStore) *domain.Session {
	sess := store.Load()
	if sess == nil {
		log.Fatal("Not logged in. Run 'linkctl login -u <username> -p <password>' first.")
	}
	return sess
}

// fatalOn reports gateway failures. A rejected credential clears the stored
// session, same contract as the browser console.
func fatalOn(store *session.FileStore, err error, action string) {
	if err == nil {
		return
	}
	if errors.Is(err, gateway.ErrUnauthenticated) {
		_ = store.Logout()
		log.Fatalf("%s failed: session expired, please log in again", action)
	}
	log.Fatalf("%s failed: %v", action, err)
}

func doLogin(ctx context.Context, gw *gateway.Client, store *session.FileStore, args []string) {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	username := loginCmd.String("u", "", "username")
	password := loginCmd.String("p", "", "password")
	loginCmd.Parse(args)
	if *username == "" || *password == "" {
		loginCmd.PrintDefaults()
		os.Exit(1)
	}

	result, err := gw.Login(ctx, *username, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	user := domain.SessionUser{Username: result.Username, Role: result.Role}
	if err := store.Login(result.Token, user); err != nil {
		log.Fatalf("Failed to store session: %v", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", result.Username, result.Role)
}

func doList(ctx context.Context, gw *gateway.Client, store *session.FileStore, args []string) {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	all := listCmd.Bool("all", false, "list every link, not just your own")
	listCmd.Parse(args)

	sess := requireSession(store)

	var links []domain.Link
	var err error
	if *all {
		links, err = gw.AllLinks(ctx, sess.Credential)
	} else {
		links, err = gw.MyLinks(ctx, sess.Credential)
	}
	fatalOn(store, err, "List")

	for _, link := range links {
		fmt.Printf("go/%-20s %-50s %6d clicks  (%s)\n", link.Keyword, link.URL, link.ClickCount, link.OwnerUsername)
	}
}

func doCreate(ctx context.Context, gw *gateway.Client, store *session.FileStore, args []string) {
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	keyword := createCmd.String("keyword", "", "go-link keyword")
	linkURL := createCmd.String("url", "", "destination URL")
	description := createCmd.String("desc", "", "optional description")
	createCmd.Parse(args)

	normalized := domain.NormalizeKeyword(*keyword)
	if err := domain.ValidateKeyword(normalized); err != nil {
		log.Fatalf("Create failed: %v", err)
	}
	if *linkURL == "" {
		createCmd.PrintDefaults()
		os.Exit(1)
	}

	sess := requireSession(store)
	link, err := gw.CreateLink(ctx, sess.Credential, normalized, domain.NormalizeURL(*linkURL), *description)
	fatalOn(store, err, "Create")
	fmt.Printf("Created go/%s -> %s\n", link.Keyword, link.URL)
}

func doUpdate(ctx context.Context, gw *gateway.Client, store *session.FileStore, args []string) {
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	keyword := updateCmd.String("keyword", "", "go-link keyword")
	linkURL := updateCmd.String("url", "", "new destination URL")
	description := updateCmd.String("desc", "", "new description")
	updateCmd.Parse(args)
	if *keyword == "" || *linkURL == "" {
		updateCmd.PrintDefaults()
		os.Exit(1)
	}

	sess := requireSession(store)
	link, err := gw.UpdateLink(ctx, sess.Credential, domain.NormalizeKeyword(*keyword), domain.NormalizeURL(*linkURL), *description)
	fatalOn(store, err, "Update")
	fmt.Printf("Updated go/%s -> %s\n", link.Keyword, link.URL)
}

func doDelete(ctx context.Context, gw *gateway.Client, store *session.FileStore, args []string) {
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	keyword := deleteCmd.String("keyword", "", "go-link keyword")
	deleteCmd.Parse(args)
	if *keyword == "" {
		deleteCmd.PrintDefaults()
		os.Exit(1)
	}

	sess := requireSession(store)
	err := gw.DeleteLink(ctx, sess.Credential, domain.NormalizeKeyword(*keyword))
	fatalOn(store, err, "Delete")
	fmt.Printf("Deleted go/%s\n", *keyword)
}

// doExport dumps every visible link as indented JSON, handy for migrations
// and backups.
func doExport(ctx context.Context, gw *gateway.Client, store *session.FileStore) {
	sess := requireSession(store)
	links, err := gw.AllLinks(ctx, sess.Credential)
	fatalOn(store, err, "Export")

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(links); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}
