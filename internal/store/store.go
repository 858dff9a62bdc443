/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package store persists the Mapping sequences a run accumulates, as a minimal
// interchange format: a run groups an ordered set of per-frame parameter vectors
// (Mapping.GetParamsFull(), always the 8-float projective form) so a later process can
// re-run resampling without re-deriving the warps.
package store

/*****************************************************************************************************************/

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

// newULID mints a monotonic, lexically-sortable run/frame identifier.
func newULID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

/*****************************************************************************************************************/

// Run is a single accumulation/stitching invocation: an ordered set of frame mappings
// recorded for later replay.
type Run struct {
	ID        string `gorm:"primaryKey"`
	Label     string
	CreatedAt time.Time
	Frames    []Frame `gorm:"foreignKey:RunID"`
}

/*****************************************************************************************************************/

// Frame is one mapping within a Run, keyed by its position in the sequence.
type Frame struct {
	ID       string `gorm:"primaryKey"`
	RunID    string `gorm:"index"`
	Sequence int
	Kind     string
	Params   string // JSON-encoded []float32, the 8-float projective form
}

/*****************************************************************************************************************/

// Store wraps a gorm.DB connection scoped to the runs/frames schema.
type Store struct {
	db *gorm.DB
}

/*****************************************************************************************************************/

// Open connects to (and migrates) a SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Run{}, &Frame{}); err != nil {
		return nil, fmt.Errorf("store: failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

/*****************************************************************************************************************/

// SaveRun persists an ordered sequence of Mappings as a new Run, returning its
// generated ULID.
func (s *Store) SaveRun(label string, mappings []warp.Mapping) (string, error) {
	id := newULID()

	frames := make([]Frame, len(mappings))

	for i, m := range mappings {
		params, err := json.Marshal(m.GetParamsFull())
		if err != nil {
			return "", fmt.Errorf("store: failed to encode frame %d: %w", i, err)
		}

		frames[i] = Frame{
			ID:       newULID(),
			RunID:    id,
			Sequence: i,
			Kind:     m.Kind.String(),
			Params:   string(params),
		}
	}

	run := Run{
		ID:        id,
		Label:     label,
		CreatedAt: time.Now(),
		Frames:    frames,
	}

	if err := s.db.Create(&run).Error; err != nil {
		return "", fmt.Errorf("store: failed to save run: %w", err)
	}

	return id, nil
}

/*****************************************************************************************************************/

// LoadRun reconstructs the ordered Mapping sequence recorded under id.
func (s *Store) LoadRun(id string) ([]warp.Mapping, error) {
	var run Run

	if err := s.db.Preload("Frames").First(&run, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("store: failed to load run %s: %w", id, err)
	}

	frames := run.Frames

	ordered := make([]Frame, len(frames))
	copy(ordered, frames)

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].Sequence < ordered[i].Sequence {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	mappings := make([]warp.Mapping, len(ordered))

	for i, f := range ordered {
		var params []float32
		if err := json.Unmarshal([]byte(f.Params), &params); err != nil {
			return nil, fmt.Errorf("store: failed to decode frame %d of run %s: %w", i, id, err)
		}

		m, err := warp.FromParams(params)
		if err != nil {
			return nil, fmt.Errorf("store: frame %d of run %s has invalid params: %w", i, id, err)
		}

		mappings[i] = m
	}

	return mappings, nil
}

/*****************************************************************************************************************/

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: failed to access underlying sql.DB: %w", err)
	}

	return sqlDB.Close()
}

/*****************************************************************************************************************/
