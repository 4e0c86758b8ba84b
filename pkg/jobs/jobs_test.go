package jobs

import (
	"context"
	"testing"

	"github.com/lumafab/agpattern/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("")
	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if rec.Status != StatusPending {
		t.Errorf("Status = %q, want pending", rec.Status)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	rec = NewRecord("client-chosen")
	if rec.ID != "client-chosen" {
		t.Errorf("ID = %q, want client-chosen", rec.ID)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := NewRecord("job-1")
	if err := s.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Duplicate ids are rejected
	if err := s.Create(ctx, NewRecord("job-1")); err == nil {
		t.Error("expected error for duplicate id")
	}

	got, err := s.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}

	// Mutating the returned record must not affect the store
	got.Status = StatusFailed
	again, _ := s.Get(ctx, "job-1")
	if again.Status != StatusPending {
		t.Error("Get should return an independent copy")
	}

	got.Status = StatusCompleted
	got.URLs = []string{"https://cdn.example.com/job-1/a.dxf"}
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	final, _ := s.Get(ctx, "job-1")
	if final.Status != StatusCompleted || len(final.URLs) != 1 {
		t.Errorf("updated record = %+v", final)
	}
	if !final.UpdatedAt.After(final.CreatedAt) && !final.UpdatedAt.Equal(final.CreatedAt) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	_, err := s.Get(ctx, "missing")
	if errors.GetCode(err) != errors.ErrCodeJobNotFound {
		t.Errorf("Get code = %v, want JOB_NOT_FOUND", errors.GetCode(err))
	}

	err = s.Update(ctx, NewRecord("missing"))
	if errors.GetCode(err) != errors.ErrCodeJobNotFound {
		t.Errorf("Update code = %v, want JOB_NOT_FOUND", errors.GetCode(err))
	}
}
