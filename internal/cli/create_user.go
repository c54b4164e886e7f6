package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/users"
)

// CreateUserCommand provisions an account that can call the API with Basic credentials.
type CreateUserCommand struct {
	Name         string
	Username     string
	Email        string
	Password     string
	DatabasePath string

	auth config.Auth
	out  io.Writer
}

func NewCreateUserCommand(cfg *config.Config) *CreateUserCommand {
	return &CreateUserCommand{
		DatabasePath: cfg.Database.Path,
		auth:         cfg.Auth,
		out:          os.Stdout,
	}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Name, "name", "", "Display name (required)")
	fs.StringVar(&cmd.Username, "username", "", "Login name, 3-64 letters, digits, '-' or '_' (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password, 8-72 bytes (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -name <name> -username <username> -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account for HTTP Basic authentication against the API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	for flagName, value := range map[string]string{
		"name":     cmd.Name,
		"username": cmd.Username,
		"email":    cmd.Email,
		"password": cmd.Password,
	} {
		if value == "" {
			return fmt.Errorf("required flag -%s not provided", flagName)
		}
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(config.Database{Path: cmd.DatabasePath, LogLevel: "error"})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), cmd.auth)
	user, err := service.Register(context.Background(), auth.Registration{
		Name:     cmd.Name,
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if err != nil {
		var dup *auth.DuplicateUserError
		if errors.As(err, &dup) {
			return fmt.Errorf("cannot create user: %w", dup)
		}
		return err
	}

	fmt.Fprintf(cmd.out, "Created user %q (id %d) in %s\n", user.Username, user.ID, cmd.DatabasePath)
	return nil
}
