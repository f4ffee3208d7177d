// Package allocator assigns unique, monotonically increasing team codes.
//
// The sequence lives in a single counter row and every allocation is an
// atomic increment inside a transaction, so concurrent callers can never
// observe the same value. A read-then-write of the counter would race and is
// deliberately not used anywhere here.
package allocator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/team/model"
)

// CounterID is the counter row the team code sequence lives in.
const CounterID = "team_code"

// maxAttempts bounds the bootstrap/increment loop. Two iterations suffice in
// practice (one bootstrap plus one increment); the bound guards against a
// store that keeps losing the counter row.
const maxAttempts = 5

var errCounterMissing = errors.New("counter row does not exist")

// Allocator hands out team codes.
type Allocator interface {
	// Allocate returns the next team code. Codes are unique across
	// concurrent callers and strictly increasing in allocation order.
	Allocate(ctx context.Context) (string, error)
}

type allocator struct {
	db     *gorm.DB
	prefix string
	logger *zap.SugaredLogger
}

// New creates an allocator producing codes like PREFIX-001.
func New(db *gorm.DB, prefix string, logger *zap.SugaredLogger) Allocator {
	return &allocator{db: db, prefix: prefix, logger: logger}
}

// Allocate increments the counter atomically. If the counter row does not
// exist yet it is initialized from the highest code already persisted, which
// tolerates manually seeded data; when two processes race on that
// initialization exactly one insert wins and the loser simply retries the
// increment path.
func (a *allocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		seq, err := a.increment(ctx)
		if err == nil {
			return Format(a.prefix, seq), nil
		}
		if !errors.Is(err, errCounterMissing) {
			return "", fmt.Errorf("%w: incrementing team code counter: %v", model.ErrStorageUnavailable, err)
		}

		if err := a.bootstrap(ctx); err != nil {
			if model.IsDuplicateKeyError(err) {
				// Another process created the counter first; take the
				// increment path on the next iteration.
				continue
			}
			return "", fmt.Errorf("%w: initializing team code counter: %v", model.ErrStorageUnavailable, err)
		}
	}
	return "", fmt.Errorf("%w: team code counter did not converge", model.ErrStorageUnavailable)
}

// increment bumps the counter and returns the new value. The UPDATE takes the
// row lock for the duration of the transaction, so the follow-up read cannot
// observe another caller's increment.
func (a *allocator) increment(ctx context.Context) (int64, error) {
	var counter model.Counter
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Counter{}).
			Where("id = ?", CounterID).
			UpdateColumn("seq", gorm.Expr("seq + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errCounterMissing
		}
		return tx.Where("id = ?", CounterID).First(&counter).Error
	})
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// bootstrap creates the counter row seeded with the highest sequence number
// among existing team codes, so allocation continues after the next
// increment rather than restarting from 1.
func (a *allocator) bootstrap(ctx context.Context) error {
	var codes []string
	err := a.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("team_code LIKE ?", a.prefix+"-%").
		Pluck("team_code", &codes).Error
	if err != nil {
		return err
	}

	var last int64
	for _, code := range codes {
		if seq, ok := ParseSequence(code, a.prefix); ok && seq > last {
			last = seq
		}
	}

	a.logger.Infow("initializing team code counter", "prefix", a.prefix, "seq", last)
	return a.db.WithContext(ctx).Create(&model.Counter{ID: CounterID, Seq: last}).Error
}

// Format renders a sequence number as a team code. Padding is cosmetic:
// sequences past 999 simply widen.
func Format(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// ParseSequence extracts the sequence number from a team code with the given
// prefix.
func ParseSequence(code, prefix string) (int64, bool) {
	rest, found := strings.CutPrefix(code, prefix+"-")
	if !found {
		return 0, false
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
