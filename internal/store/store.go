// Package store is the durable side of the analysis pipeline: gorm-backed
// Postgres persistence for analyses, detected objects, and product matches.
//
// The store is the source of truth. The Redis status projection
// (internal/statuscache) may lag or expire; anything read from there must be
// reconcilable with what this package holds.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stylelens/stylelens/internal/logger"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("store: record not found")

// ErrStaleTransition is returned when a status update loses against an
// already-terminal analysis state.
var ErrStaleTransition = errors.New("store: illegal status transition")

// Store wraps the gorm connection with the pipeline's persistence operations.
type Store struct {
	db  *gorm.DB
	log logger.Logger
}

// NewStore opens the Postgres connection pool and optionally migrates the
// schema.
func NewStore(cfg Config, log logger.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: access pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&Analysis{}, &DetectedObject{}, &ProductMatch{}); err != nil {
			return nil, fmt.Errorf("store: migrate: %w", err)
		}
	}

	log.Info("connected to postgres", nil, map[string]interface{}{
		"host": cfg.Host,
		"db":   cfg.DBName,
	})
	return &Store{db: db, log: log}, nil
}

// NewStoreWithDB wraps an existing gorm connection. Used by tests.
func NewStoreWithDB(db *gorm.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Close drains the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies connectivity. Used by the fx start hook.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateAnalysis inserts a new analysis row in PENDING state.
func (s *Store) CreateAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("store: create analysis: %w", err)
	}
	return nil
}

// GetAnalysis loads one analysis row without its objects.
func (s *Store) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get analysis: %w", err)
	}
	return &a, nil
}

// UpdateAnalysisStatus applies a state-machine transition. Terminal states
// are sticky: the update only lands if the stored status admits the
// transition, so a racing writer cannot resurrect a DONE or FAILED analysis.
func (s *Store) UpdateAnalysisStatus(ctx context.Context, id uuid.UUID, status Status, reason string) error {
	var from []Status
	switch status {
	case StatusRunning:
		from = []Status{StatusPending}
	case StatusDone, StatusFailed:
		from = []Status{StatusPending, StatusRunning}
	default:
		return fmt.Errorf("store: cannot transition into %q", status)
	}

	res := s.db.WithContext(ctx).Model(&Analysis{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":         status,
			"failure_reason": reason,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("store: update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleTransition
	}
	return nil
}

// SaveAnalysisResults performs the aggregator's durable batch write: all
// detected objects and their product matches of one run, plus the terminal
// analysis status, in a single transaction. From the caller's perspective the
// object set is all-or-nothing — a client never observes a partial batch.
func (s *Store) SaveAnalysisResults(
	ctx context.Context,
	analysisID uuid.UUID,
	objects []DetectedObject,
	status Status,
	reason string,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range objects {
			obj := &objects[i]
			if obj.ID == uuid.Nil {
				obj.ID = uuid.New()
			}
			obj.AnalysisID = analysisID
			if obj.Version == 0 {
				obj.Version = 1
			}

			matches := obj.Matches
			obj.Matches = nil
			if err := tx.Create(obj).Error; err != nil {
				return fmt.Errorf("create detected object: %w", err)
			}

			for j := range matches {
				m := &matches[j]
				if m.ID == uuid.Nil {
					m.ID = uuid.New()
				}
				m.DetectedObjectID = obj.ID
			}
			if len(matches) > 0 {
				if err := tx.Create(&matches).Error; err != nil {
					return fmt.Errorf("create product matches: %w", err)
				}
			}
			obj.Matches = matches
		}

		res := tx.Model(&Analysis{}).
			Where("id = ? AND status IN ?", analysisID, []Status{StatusPending, StatusRunning}).
			Updates(map[string]interface{}{
				"status":         status,
				"failure_reason": reason,
				"updated_at":     time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("finalize analysis: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStaleTransition
		}
		return nil
	})
}

// RecordRefineQuery stores the most recent refinement query on the analysis.
func (s *Store) RecordRefineQuery(ctx context.Context, id uuid.UUID, query string) error {
	res := s.db.WithContext(ctx).Model(&Analysis{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"refine_query": query,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("store: record refine query: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetResults loads an analysis with its current (non-superseded) objects and
// their candidates ordered by rank.
func (s *Store) GetResults(ctx context.Context, analysisID uuid.UUID) (*Analysis, error) {
	a, err := s.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Where("analysis_id = ? AND superseded_by IS NULL", analysisID).
		Order("created_at").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_matches.rank")
		}).
		Find(&a.Objects).Error
	if err != nil {
		return nil, fmt.Errorf("store: load results: %w", err)
	}
	return a, nil
}

// GetDetectedObject loads one object with its ranked matches.
func (s *Store) GetDetectedObject(ctx context.Context, id uuid.UUID) (*DetectedObject, error) {
	var obj DetectedObject
	err := s.db.WithContext(ctx).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_matches.rank")
		}).
		First(&obj, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get detected object: %w", err)
	}
	return &obj, nil
}

// AppendRefinedObject writes the refine workflow's append-only history
// update: insert the refined object and its candidates, then mark the prior
// version superseded. The prior row itself is never mutated beyond the
// supersession pointer.
func (s *Store) AppendRefinedObject(ctx context.Context, priorID uuid.UUID, refined *DetectedObject) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if refined.ID == uuid.Nil {
			refined.ID = uuid.New()
		}

		matches := refined.Matches
		refined.Matches = nil
		if err := tx.Create(refined).Error; err != nil {
			return fmt.Errorf("create refined object: %w", err)
		}

		for j := range matches {
			m := &matches[j]
			if m.ID == uuid.Nil {
				m.ID = uuid.New()
			}
			m.DetectedObjectID = refined.ID
		}
		if len(matches) > 0 {
			if err := tx.Create(&matches).Error; err != nil {
				return fmt.Errorf("create refined matches: %w", err)
			}
		}
		refined.Matches = matches

		res := tx.Model(&DetectedObject{}).
			Where("id = ? AND superseded_by IS NULL", priorID).
			Update("superseded_by", refined.ID)
		if res.Error != nil {
			return fmt.Errorf("supersede prior object: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("prior object %s already superseded: %w", priorID, ErrStaleTransition)
		}
		return nil
	})
}
