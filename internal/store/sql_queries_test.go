package store

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-vault/models"
)

func TestBuildUpdateEntryQuery_AllFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	update := models.Entry{
		EntryID:             10,
		UserID:              3,
		Application:         "github",
		ApplicationUsername: "octocat",
		Password:            "s3cret",
	}

	query, args, err := buildUpdateEntryQuery(update, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantQuery := "UPDATE entries SET updated_at = $1, application = $2, application_username = $3, password = $4 WHERE entry_id = $5 AND user_id = $6 RETURNING " + entryReturningColumns
	if query != wantQuery {
		t.Errorf("query mismatch:\n got: %s\nwant: %s", query, wantQuery)
	}

	wantArgs := []any{now, "github", "octocat", "s3cret", int64(10), int64(3)}
	if len(args) != len(wantArgs) {
		t.Fatalf("expected %d args, got %d: %v", len(wantArgs), len(args), args)
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Errorf("arg %d mismatch: got %v, want %v", i, args[i], wantArgs[i])
		}
	}
}

func TestBuildUpdateEntryQuery_SingleField(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	update := models.Entry{
		EntryID:  10,
		UserID:   3,
		Password: "rotated",
	}

	query, args, err := buildUpdateEntryQuery(update, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantQuery := "UPDATE entries SET updated_at = $1, password = $2 WHERE entry_id = $3 AND user_id = $4 RETURNING " + entryReturningColumns
	if query != wantQuery {
		t.Errorf("query mismatch:\n got: %s\nwant: %s", query, wantQuery)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d: %v", len(args), args)
	}
	if args[1] != "rotated" {
		t.Errorf("expected password arg, got %v", args[1])
	}
}

func TestBuildUpdateEntryQuery_NoFields(t *testing.T) {
	update := models.Entry{EntryID: 10, UserID: 3}

	_, _, err := buildUpdateEntryQuery(update, time.Now())
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}
