package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil error", err: nil, want: NonRetryable},
		{name: "not a pg error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "connection does not exist", err: pgError(pgerrcode.ConnectionDoesNotExist), want: Retryable},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), want: Retryable},
		{name: "deadlock detected", err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "not null violation", err: pgError(pgerrcode.NotNullViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
		{name: "undefined table", err: pgError(pgerrcode.UndefinedTable), want: NonRetryable},
		{name: "unrecognised code", err: pgError("P0001"), want: NonRetryable},
		{name: "wrapped pg error", err: fmt.Errorf("exec: %w", pgError(pgerrcode.DeadlockDetected)), want: Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDBClassify_TagsRetryableErrors(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	transient := db.classify(pgError(pgerrcode.ConnectionFailure))
	if !errors.Is(transient, ErrRetryable) {
		t.Fatalf("expected ErrRetryable for a connection failure, got %v", transient)
	}

	permanent := db.classify(pgError(pgerrcode.UniqueViolation))
	if errors.Is(permanent, ErrRetryable) {
		t.Fatalf("unique violation must not be tagged retryable, got %v", permanent)
	}
}

func TestDBClassify_NoClassifierPassesThrough(t *testing.T) {
	db := &DB{}

	cause := errors.New("boom")
	if got := db.classify(cause); got != cause {
		t.Fatalf("expected error passed through unchanged, got %v", got)
	}
}
