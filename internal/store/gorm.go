package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/models"
)

const (
	kindCurrent = "current"
	kindHistory = "history"

	currentID = "current"
)

// snapshot is the storage row: invoices are kept as opaque JSON documents,
// ordered by position within their kind.
type snapshot struct {
	ID        string `gorm:"primaryKey;size:64"`
	Kind      string `gorm:"index;size:16;not null"`
	Position  int    `gorm:"not null;default:0"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GormStore persists snapshots through gorm (sqlite by default, postgres
// via DSN).
type GormStore struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// NewGormStore migrates the snapshot table and returns the store.
func NewGormStore(db *gorm.DB, log zerolog.Logger) (*GormStore, error) {
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", err)
	}
	return &GormStore{db: db, log: log, now: time.Now}, nil
}

// decodeInvoice parses a stored snapshot, applying the schema backfills:
// visibility flags missing from older snapshots default to shown (seeding
// the full default template before decoding covers snapshots with no
// visibility object at all), and the tax field's own decoder backfills the
// custom rate.
func decodeInvoice(data []byte) (*models.Invoice, error) {
	inv := models.Invoice{Visible: models.DefaultFieldVisibility()}
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, err
	}
	if inv.AccentColor == "" {
		inv.AccentColor = models.DefaultAccentColor
	}
	return &inv, nil
}

func (s *GormStore) Current() (*models.Invoice, error) {
	var row snapshot
	err := s.db.Where("id = ? AND kind = ?", currentID, kindCurrent).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultInvoice(s.now()), nil
	}
	if err != nil {
		return nil, err
	}
	inv, err := decodeInvoice(row.Data)
	if err != nil {
		// A corrupt snapshot falls back to a fresh default rather than
		// surfacing a parse failure.
		s.log.Warn().Err(err).Msg("current invoice snapshot unreadable, using defaults")
		return models.DefaultInvoice(s.now()), nil
	}
	return inv, nil
}

func (s *GormStore) SetCurrent(inv *models.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	row := snapshot{ID: currentID, Kind: kindCurrent, Data: data}
	res := s.db.Model(&snapshot{}).Where("id = ?", currentID).Update("data", data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.db.Create(&row).Error
	}
	return nil
}

func (s *GormStore) History() ([]models.Invoice, error) {
	var rows []snapshot
	if err := s.db.Where("kind = ?", kindHistory).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := decodeInvoice(row.Data)
		if err != nil {
			s.log.Warn().Err(err).Str("id", row.ID).Msg("skipping unreadable history snapshot")
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (s *GormStore) Get(id string) (*models.Invoice, error) {
	var row snapshot
	if err := s.db.Where("id = ? AND kind = ?", id, kindHistory).First(&row).Error; err != nil {
		return nil, err
	}
	return decodeInvoice(row.Data)
}

func (s *GormStore) Save(inv *models.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	res := s.db.Model(&snapshot{}).
		Where("id = ? AND kind = ?", inv.ID, kindHistory).
		Update("data", data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var maxPos int
	s.db.Model(&snapshot{}).Where("kind = ?", kindHistory).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
	return s.db.Create(&snapshot{
		ID:       inv.ID,
		Kind:     kindHistory,
		Position: maxPos + 1,
		Data:     data,
	}).Error
}

func (s *GormStore) Delete(id string) error {
	return s.db.Where("id = ? AND kind = ?", id, kindHistory).Delete(&snapshot{}).Error
}
