package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the wire format for sale timestamps. Lexical order equals
// chronological order, so range queries use plain string comparison.
const TimeLayout = "2006-01-02 15:04:05"

var ErrUnavailable = errors.New("storage unavailable")

// Ledger is the append-only log of completed sales. Records are never
// updated or deleted.
type Ledger interface {
	Init(ctx context.Context) error
	Record(ctx context.Context, s *Sale) (uint, error)
	Aggregate(ctx context.Context, from, to time.Time) (Summary, error)
	Extent(ctx context.Context) (first, last time.Time, ok bool, err error)
	Breakdown(ctx context.Context, from, to time.Time) ([]ItemTotal, error)
	Close() error
}

type Sale struct {
	ID       uint
	SoldAt   time.Time
	Item     string
	Category string
	Variant  string
	Price    decimal.Decimal
	Payment  string
}

// Summary is the count/total pair over a date range.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// ItemTotal is one row of a per-item breakdown.
type ItemTotal struct {
	Item     string
	Count    int
	Subtotal decimal.Decimal
}
