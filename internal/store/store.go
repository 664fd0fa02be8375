// Package store is the persistence boundary for invoice snapshots: one
// "current invoice" record and an ordered history of saved snapshots.
package store

import "github.com/diewo77/invoice-builder/internal/models"

// Store is the contract the engine consumes. Implementations apply the
// schema backfills (field visibility, custom tax rate) on load and never
// surface a parse failure: malformed data degrades to defaults.
type Store interface {
	// Current returns the working invoice, or a fresh default when none is
	// stored or the stored snapshot cannot be parsed.
	Current() (*models.Invoice, error)
	// SetCurrent overwrites the working invoice snapshot.
	SetCurrent(inv *models.Invoice) error
	// History returns all saved snapshots in insertion order.
	History() ([]models.Invoice, error)
	// Get returns one saved snapshot by id.
	Get(id string) (*models.Invoice, error)
	// Save writes a snapshot into history: an existing id is overwritten in
	// place, a new id is appended. Last write wins.
	Save(inv *models.Invoice) error
	// Delete removes a history entry permanently.
	Delete(id string) error
}
