package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"senya/backend/models"
	"senya/backend/progression"
)

// ProgressCache stores derived per-user overall progress. Misses and errors
// fall back to recomputation.
type ProgressCache interface {
	Get(ctx context.Context, userID uint) (int, bool, error)
	Set(ctx context.Context, userID uint, pct int) error
	Invalidate(ctx context.Context, userID uint) error
	InvalidateAll(ctx context.Context) error
}

type Options struct {
	Clock  progression.Clock
	Cache  ProgressCache
	Logger *log.Logger
	// Retries is the number of attempts per transaction on transient failures.
	Retries int
	// Pick returns a value in [0,n); defaults to math/rand.
	Pick func(n int) int
}

// ProgressionService runs every progression rule inside one store
// transaction so that a rule's effects commit together or not at all.
type ProgressionService struct {
	db      *gorm.DB
	clock   progression.Clock
	cache   ProgressCache
	logger  *log.Logger
	retries int
	pick    func(n int) int
}

func NewProgressionService(db *gorm.DB, opts Options) *ProgressionService {
	if db == nil {
		panic("NewProgressionService requires a non-nil db")
	}
	s := &ProgressionService{
		db:      db,
		clock:   opts.Clock,
		cache:   opts.Cache,
		logger:  opts.Logger,
		retries: opts.Retries,
		pick:    opts.Pick,
	}
	if s.clock == nil {
		s.clock = progression.SystemClock
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.retries < 1 {
		s.retries = 1
	}
	if s.pick == nil {
		s.pick = rand.Intn
	}
	return s
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

// inTx runs fn in a transaction, retrying the whole function while the store
// reports a transient conflict. fn must re-read everything it mutates.
func (s *ProgressionService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= s.retries; attempt++ {
		err = classifyTx(s.db.WithContext(ctx).Transaction(fn))
		if !errors.Is(err, progression.ErrTransient) || ctx.Err() != nil {
			return err
		}
		s.logger.Printf("transaction attempt %d/%d rolled back: %v", attempt, s.retries, err)
	}
	return err
}

// read runs a read-only query set without a transaction.
func (s *ProgressionService) read(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// classify maps store errors onto the progression error kinds.
func classify(err error) error {
	if err == nil ||
		errors.Is(err, progression.ErrNotFound) ||
		errors.Is(err, progression.ErrInvalidInput) ||
		errors.Is(err, progression.ErrTransient) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", progression.ErrNotFound, err)
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %v", progression.ErrTransient, err)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: already exists: %v", progression.ErrInvalidInput, err)
	}
	return err
}

// classifyTx is classify for rule transactions. There a unique violation
// means a concurrent writer created the same lazy progress row first, so the
// rule is worth re-running.
func classifyTx(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", progression.ErrTransient, err)
	}
	return classify(err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return true
		}
		return false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func notFound(what string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", what, id, progression.ErrNotFound)
}

// lockProfile loads the user's profile with a row lock.
func lockProfile(tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := tx.Clauses(forUpdate).Where("user_id = ?", userID).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user profile", userID)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
