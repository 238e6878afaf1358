// Command adduser registers an account from the terminal, prompting for
// the password so it never lands in shell history.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/store"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
)

// seam for tests
var readPassword = term.ReadPassword

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var username, name, email string
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	flag.StringVar(&username, "u", "", "username (required)")
	flag.StringVar(&name, "n", "", "display name")
	flag.StringVar(&email, "e", "", "email")
	flag.Parse()

	if username == "" {
		return errors.New("username is required (-u)")
	}

	fmt.Print("Password: ")
	password, err := readPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.RunMigrations(ctx, db); err != nil {
		return err
	}

	service := users.NewService(users.NewPostgresRepository(db), cfg)

	user, err := service.Register(ctx, name, email, username, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("username %q already exists", username)
		}
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
	return nil
}
