// Package points owns every write to users.total_points. Graders and the
// progress reconciler must go through the Ledger so the running total always
// equals the sum of points_earned across the user's progress rows.
package points

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

var ErrUserMissing = errors.New("points ledger: user row not found")

type Ledger interface {
	// Credit adds delta to the user's total. A delta of zero or less is a
	// no-op so unimproved re-attempts leave the row untouched. When tx is
	// nil the ledger's own connection is used; pass the reconciler's
	// transaction so the credit commits atomically with the progress write.
	Credit(ctx context.Context, tx *gorm.DB, userID uint, delta int) error
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) Credit(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	if delta <= 0 {
		return nil
	}
	conn := tx
	if conn == nil {
		conn = l.db
	}

	res := conn.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserMissing
	}

	config.WithContext(ctx).Infof("credited %d points to user %d", delta, userID)
	return nil
}
