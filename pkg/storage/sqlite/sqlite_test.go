package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage/sqlite"
)

// openTestLedger opens a fresh database in a temp directory and registers
// t.Cleanup to close it.
func openTestLedger(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "sales.db"), time.UTC)
	if err != nil {
		t.Fatalf("openTestLedger: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("openTestLedger init: %v", err)
	}
	return s
}

func saleAt(at time.Time, item string, price int64) *storage.Sale {
	return &storage.Sale{
		SoldAt:   at,
		Item:     item,
		Category: "Tea",
		Variant:  "Iced",
		Price:    decimal.NewFromInt(price),
		Payment:  "cash",
	}
}

func TestRecord_AssignsIncreasingIDs(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)
	ctx := context.Background()

	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	id1, err := s.Record(ctx, saleAt(at, "Green Tea", 30))
	c.Assert(err, qt.IsNil)
	id2, err := s.Record(ctx, saleAt(at, "Black Tea", 25))
	c.Assert(err, qt.IsNil)
	c.Assert(id2 > id1, qt.IsTrue)
}

func TestAggregate_EmptyRangeIsZero(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)

	sum, err := s.Aggregate(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(sum.Count, qt.Equals, 0)
	c.Assert(sum.Total.IsZero(), qt.IsTrue)
}

func TestAggregate_InclusiveBounds(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)

	_, err := s.Record(ctx, saleAt(start, "Green Tea", 30)) // exactly on the lower bound
	c.Assert(err, qt.IsNil)
	_, err = s.Record(ctx, saleAt(end, "Green Tea", 45)) // exactly on the upper bound
	c.Assert(err, qt.IsNil)

	sum, err := s.Aggregate(ctx, start, end)
	c.Assert(err, qt.IsNil)
	c.Assert(sum.Count, qt.Equals, 2)
	c.Assert(sum.Total.String(), qt.Equals, "75")
}

func TestAggregate_ExcludesOtherDays(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)
	ctx := context.Background()

	today := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	_, err := s.Record(ctx, saleAt(today, "Green Tea", 30))
	c.Assert(err, qt.IsNil)
	_, err = s.Record(ctx, saleAt(yesterday, "Green Tea", 30))
	c.Assert(err, qt.IsNil)

	daySum, err := s.Aggregate(ctx,
		time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(daySum.Count, qt.Equals, 1)

	allSum, err := s.Aggregate(ctx,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(allSum.Count, qt.Equals, 2)
}

func TestExtent(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)
	ctx := context.Background()

	_, _, ok, err := s.Extent(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	first := time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC)
	last := time.Date(2026, 8, 29, 18, 45, 0, 0, time.UTC)
	_, err = s.Record(ctx, saleAt(last, "Green Tea", 30))
	c.Assert(err, qt.IsNil)
	_, err = s.Record(ctx, saleAt(first, "Green Tea", 30))
	c.Assert(err, qt.IsNil)

	gotFirst, gotLast, ok, err := s.Extent(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(gotFirst.Equal(first), qt.IsTrue)
	c.Assert(gotLast.Equal(last), qt.IsTrue)
}

func TestBreakdown_OrderedBySubtotal(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)
	ctx := context.Background()

	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	// Mocha: 1 cup at 45; Green Tea: 2 cups totalling 60.
	_, err := s.Record(ctx, saleAt(at, "Mocha", 45))
	c.Assert(err, qt.IsNil)
	_, err = s.Record(ctx, saleAt(at, "Green Tea", 30))
	c.Assert(err, qt.IsNil)
	_, err = s.Record(ctx, saleAt(at, "Green Tea", 30))
	c.Assert(err, qt.IsNil)

	items, err := s.Breakdown(ctx,
		time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(items, qt.HasLen, 2)
	c.Assert(items[0].Item, qt.Equals, "Green Tea")
	c.Assert(items[0].Count, qt.Equals, 2)
	c.Assert(items[0].Subtotal.String(), qt.Equals, "60")
	c.Assert(items[1].Item, qt.Equals, "Mocha")
	c.Assert(items[1].Subtotal.String(), qt.Equals, "45")
}

func TestBreakdown_EmptyRange(t *testing.T) {
	c := qt.New(t)
	s := openTestLedger(t)

	items, err := s.Breakdown(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(items, qt.HasLen, 0)
}
