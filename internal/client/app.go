package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-cred-vault/internal/adapter"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/models"
)

// App dispatches a single command-line invocation to the vault server.
//
// The session token issued at login is kept in tokenFile between
// invocations so that authenticated commands work across processes.
type App struct {
	adapter   adapter.ServerAdapter
	tokenFile string
	out       io.Writer

	logger *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(serverAdapter adapter.ServerAdapter, tokenFile string, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:   serverAdapter,
		tokenFile: tokenFile,
		out:       out,
		logger:    logger,
	}
}

// Run executes a single subcommand. args is the command line after flags:
// the first element names the command, the rest are its arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n\n%s", ErrUsage, usage)
	}

	command, commandArgs := args[0], args[1:]

	switch command {
	case "register":
		return a.register(ctx, commandArgs)
	case "login":
		return a.login(ctx, commandArgs)
	case "logout":
		return a.logout(ctx)
	case "totp-setup":
		return a.totpSetup(ctx, commandArgs)
	case "totp-verify":
		return a.totpVerify(ctx, commandArgs)
	case "create":
		return a.createEntry(ctx, commandArgs)
	case "list":
		return a.listEntries(ctx)
	case "get":
		return a.getEntry(ctx, commandArgs)
	case "update":
		return a.updateEntry(ctx, commandArgs)
	case "delete":
		return a.deleteEntry(ctx, commandArgs)
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: %q\n\n%s", ErrUnknownCommand, command, usage)
	}
}

const usage = `commands:
  register <username> <password>       create a new account
  login <username> <password>          start a session
  logout                               revoke the current session
  totp-setup <username> <qr-file>      enroll in TOTP, write QR code PNG
  totp-verify <username> <code>        complete an MFA login
  create <app> <app-user> <password>   store a vault entry
  list                                 list vault entries
  get <entry-id>                       show one vault entry
  update <entry-id> <field> <value>    change application, username or password
  delete <entry-id>                    remove a vault entry`

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: register <username> <password>", ErrUsage)
	}

	registered, err := a.adapter.Register(ctx, models.User{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered user %d\n", registered.UserID)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <username> <password>", ErrUsage)
	}

	loginResponse, err := a.adapter.Login(ctx, models.User{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	if loginResponse.MFARequired {
		fmt.Fprintln(a.out, "TOTP verification required: run totp-verify <username> <code>")
		return nil
	}

	if err = a.saveToken(a.adapter.Token()); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}

	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.loadToken(); err != nil {
		return err
	}

	if err := a.adapter.Logout(ctx); err != nil {
		return err
	}

	if err := os.Remove(a.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session token: %w", err)
	}

	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) totpSetup(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: totp-setup <username> <qr-file>", ErrUsage)
	}

	png, err := a.adapter.SetupTOTP(ctx, args[0])
	if err != nil {
		return err
	}

	if err = os.WriteFile(args[1], png, 0o600); err != nil {
		return fmt.Errorf("write QR code: %w", err)
	}

	fmt.Fprintf(a.out, "QR code written to %s; scan it and verify with totp-verify\n", args[1])
	return nil
}

func (a *App) totpVerify(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: totp-verify <username> <code>", ErrUsage)
	}

	if _, err := a.adapter.VerifyTOTP(ctx, args[0], args[1]); err != nil {
		return err
	}

	if err := a.saveToken(a.adapter.Token()); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}

	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *App) createEntry(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: create <app> <app-user> <password>", ErrUsage)
	}
	if err := a.loadToken(); err != nil {
		return err
	}

	created, err := a.adapter.CreateEntry(ctx, models.Entry{
		Application:         args[0],
		ApplicationUsername: args[1],
		Password:            args[2],
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created entry %d\n", created.EntryID)
	return nil
}

func (a *App) listEntries(ctx context.Context) error {
	if err := a.loadToken(); err != nil {
		return err
	}

	entries, err := a.adapter.GetAllEntries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", entry.EntryID, entry.Application, entry.ApplicationUsername)
	}
	return nil
}

func (a *App) getEntry(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: get <entry-id>", ErrUsage)
	}
	if err := a.loadToken(); err != nil {
		return err
	}

	entryID, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	entry, err := a.adapter.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "application: %s\nusername: %s\npassword: %s\n", entry.Application, entry.ApplicationUsername, entry.Password)
	return nil
}

func (a *App) updateEntry(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: update <entry-id> <field> <value>", ErrUsage)
	}
	if err := a.loadToken(); err != nil {
		return err
	}

	entryID, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	entry := models.Entry{EntryID: entryID}
	switch args[1] {
	case "application":
		entry.Application = args[2]
	case "username":
		entry.ApplicationUsername = args[2]
	case "password":
		entry.Password = args[2]
	default:
		return fmt.Errorf("%w: field must be application, username or password", ErrUsage)
	}

	if _, err = a.adapter.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "updated entry %d\n", entryID)
	return nil
}

func (a *App) deleteEntry(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <entry-id>", ErrUsage)
	}
	if err := a.loadToken(); err != nil {
		return err
	}

	entryID, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted entry %d\n", entryID)
	return nil
}

func parseEntryID(raw string) (int64, error) {
	entryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: entry id must be a number", ErrUsage)
	}
	return entryID, nil
}

func (a *App) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0o700); err != nil {
		return err
	}

	return os.WriteFile(a.tokenFile, []byte(token), 0o600)
}

func (a *App) loadToken() error {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("read session token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return ErrNotLoggedIn
	}

	a.adapter.SetToken(token)
	return nil
}
