// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/fragmede/fundcli/schema"
)

// HistoryStore supplies the ordered sequence of raw command records for
// one analysis run. Implementations handle time and host filtering; the
// core never filters records itself.
type HistoryStore interface {
	// Query returns records within the period, newest first. An empty
	// hostname matches all hosts.
	Query(ctx context.Context, period schema.TimePeriod, hostname string) ([]schema.HistoryEntry, error)

	// Stats summarizes the full store regardless of period.
	Stats(ctx context.Context) (schema.HistoryStats, error)

	// Close closes the underlying connection.
	Close() error
}

// Registry maps executable names to donation-eligible projects.
// This allows the aggregation logic to be tested without the bundled
// project database.
type Registry interface {
	// ProjectFor resolves an executable name to its project, if known.
	ProjectFor(exe string) (*schema.Project, bool)

	// Project returns a project by its identifier.
	Project(id string) (*schema.Project, bool)

	// AllProjects returns every known project.
	AllProjects() []*schema.Project

	// Search matches projects by name, description, id or executable.
	Search(query string) []*schema.Project

	// AddMapping registers an extra executable -> project mapping on
	// top of the bundled data (used for resolved aliases and user
	// overrides). Unknown project ids are ignored.
	AddMapping(exe, projectID string)
}

// ClassifyStore persists judgments about executables the registry does
// not recognize. This allows mocking the store for testing.
type ClassifyStore interface {
	// Upsert inserts or refreshes the record for one executable.
	Upsert(rec *schema.UnknownRecord) error

	// Get returns the record for an executable, or nil when absent.
	Get(executable string) (*schema.UnknownRecord, error)

	// List returns records with the given classification; the empty
	// classification matches all records.
	List(class schema.Classification) ([]schema.UnknownRecord, error)

	// SetClassification records a user judgment for an executable.
	SetClassification(executable string, class schema.Classification, notes string) error

	// Exceptions returns executables the user has settled (system,
	// user or ignored). Callers exclude these from unknown reporting.
	Exceptions() ([]string, error)

	// Clear removes every record, including the exception list.
	Clear() error

	// GetStatus returns status information about the store.
	GetStatus() (schema.ClassifyStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the configured classify store.
type StoreManager interface {
	GetClassifyStore() ClassifyStore
}
