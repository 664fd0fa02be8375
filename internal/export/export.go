// Package export runs document generation off the request path. At most
// one export runs at a time: concurrent exports are not queued or
// coalesced, a second request is simply refused while the first is pending.
package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/invoice-builder/internal/layout"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/render"
)

// ErrExportInFlight is returned when an export is requested while another
// is still pending.
var ErrExportInFlight = errors.New("export already in progress")

// Result describes a finished export.
type Result struct {
	Path     string
	Filename string
	Err      error
	Duration time.Duration
}

// Manager generates export artifacts asynchronously. The zero value is not
// usable; construct with NewManager.
type Manager struct {
	dir      string
	log      zerolog.Logger
	inFlight atomic.Bool
	onDone   func(Result)
}

// NewManager returns a manager writing artifacts into dir. onDone, when
// non-nil, is invoked after every export with its outcome (the notification
// hook); it runs on the export goroutine.
func NewManager(dir string, log zerolog.Logger, onDone func(Result)) *Manager {
	return &Manager{dir: dir, log: log, onDone: onDone}
}

// Busy reports whether an export is currently pending. The HTTP surface
// uses it to disable the export trigger.
func (m *Manager) Busy() bool { return m.inFlight.Load() }

// Start snapshots the invoice and generates its PDF in the background.
// It returns the artifact filename immediately, or ErrExportInFlight when
// an export is already pending.
func (m *Manager) Start(ctx context.Context, inv *models.Invoice, lang string) (string, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return "", ErrExportInFlight
	}
	snapshot := inv.Clone()
	filename := render.Filename(snapshot, lang, "pdf")

	go func() {
		defer m.inFlight.Store(false)
		started := time.Now()
		res := Result{
			Filename: filename,
			Path:     filepath.Join(m.dir, filename),
		}
		res.Err = m.generate(ctx, snapshot, lang, res.Path)
		res.Duration = time.Since(started)

		if res.Err != nil {
			m.log.Error().Err(res.Err).Str("file", res.Filename).Msg("export failed")
		} else {
			m.log.Info().Str("file", res.Filename).Dur("took", res.Duration).Msg("export complete")
		}
		if m.onDone != nil {
			m.onDone(res)
		}
	}()
	return filename, nil
}

func (m *Manager) generate(ctx context.Context, inv *models.Invoice, lang, path string) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	doc := layout.Compose(inv, lang)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePDF(ctx, doc, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
