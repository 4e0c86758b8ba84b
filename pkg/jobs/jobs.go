// Package jobs tracks batch generation runs. A job records the request
// parameters, its lifecycle status, and the public URLs of every uploaded
// artifact, so clients can poll for results after submitting a sweep.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a job.
type Status string

// Job lifecycle states.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is one batch generation run.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Status    Status    `json:"status" bson:"status"`
	URLs      []string  `json:"urls,omitempty" bson:"urls,omitempty"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a pending record. With an empty id a random UUID is
// assigned; callers that accept client-chosen job ids pass them through.
func NewRecord(id string) *Record {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return &Record{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists job records.
type Store interface {
	// Create inserts a new record.
	Create(ctx context.Context, rec *Record) error

	// Get returns the record by id, or a JOB_NOT_FOUND coded error.
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces the record by id. UpdatedAt is refreshed.
	Update(ctx context.Context, rec *Record) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
