package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/battlelog/cr-tracker/internal/infrastructure/repository/memory"
)

func TestPlayerService_RegisterIsIdempotentOnTag(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository())

	first, err := svc.Register(context.Background(), "alice", "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Tag != "#ABC123" {
		t.Fatalf("tag must be normalized, got %s", first.Tag)
	}

	// Same tag in a different spelling returns the original registration.
	second, err := svc.Register(context.Background(), "impostor", "#ABC123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID || second.Username != "alice" {
		t.Fatalf("expected original row back, got %+v", second)
	}
}

func TestPlayerService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository())

	if _, err := svc.Register(context.Background(), "  ", "#ABC123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "##"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad tag, got %v", err)
	}
}

func TestPlayerService_GetByTag(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository())
	if _, err := svc.Register(context.Background(), "alice", "#ABC123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByTag(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected player: %+v", got)
	}

	if _, err := svc.GetByTag(context.Background(), "#ZZZ999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
