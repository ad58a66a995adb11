// Package sqlite is the default Ledger backend, matching the original
// single-file deployment of the shop.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/shopspring/decimal"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
)

type Storage struct {
	db  *sql.DB
	loc *time.Location
}

// New opens (or creates) the SQLite database at path. Timestamps are
// written and read in loc, the shop's local time zone.
func New(path string, loc *time.Location) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}
	return &Storage{db: db, loc: loc}, nil
}

// Init creates the sales table if it does not exist.
func (s *Storage) Init(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sold_at TEXT NOT NULL,
		item_name TEXT NOT NULL,
		category_name TEXT NOT NULL,
		variant_name TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL,
		payment_method TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("can't create sales table: %w", err)
	}
	q = `CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales (sold_at)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("can't create sales index: %w", err)
	}
	return nil
}

// Record appends a sale. When s.SoldAt is zero the current time is used.
func (s *Storage) Record(ctx context.Context, sale *storage.Sale) (uint, error) {
	at := sale.SoldAt
	if at.IsZero() {
		at = time.Now()
	}
	q := `INSERT INTO sales (sold_at, item_name, category_name, variant_name, price, payment_method)
	      VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		at.In(s.loc).Format(storage.TimeLayout),
		sale.Item, sale.Category, sale.Variant, sale.Price.StringFixed(2), sale.Payment,
	)
	if err != nil {
		return 0, fmt.Errorf("can't save sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("can't read sale id: %w", err)
	}
	return uint(id), nil
}

// Aggregate returns count and total for sales in [from, to] inclusive.
// An empty range yields an empty Summary, not an error.
func (s *Storage) Aggregate(ctx context.Context, from, to time.Time) (storage.Summary, error) {
	q := `SELECT COUNT(*), COALESCE(SUM(price), 0) FROM sales WHERE sold_at >= ? AND sold_at <= ?`

	var count int
	var total float64
	err := s.db.QueryRowContext(ctx, q, s.format(from), s.format(to)).Scan(&count, &total)
	if err != nil {
		return storage.Summary{}, fmt.Errorf("can't aggregate sales: %w", err)
	}
	return storage.Summary{Count: count, Total: decimal.NewFromFloat(total).Round(2)}, nil
}

// Extent returns the first and last sale timestamps. ok is false when the
// ledger is empty.
func (s *Storage) Extent(ctx context.Context) (first, last time.Time, ok bool, err error) {
	q := `SELECT MIN(sold_at), MAX(sold_at) FROM sales`

	var minAt, maxAt sql.NullString
	if err = s.db.QueryRowContext(ctx, q).Scan(&minAt, &maxAt); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("can't read sales extent: %w", err)
	}
	if !minAt.Valid || !maxAt.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	if first, err = time.ParseInLocation(storage.TimeLayout, minAt.String, s.loc); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("can't parse first sale time: %w", err)
	}
	if last, err = time.ParseInLocation(storage.TimeLayout, maxAt.String, s.loc); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("can't parse last sale time: %w", err)
	}
	return first, last, true, nil
}

// Breakdown groups sales in [from, to] by item, largest subtotal first.
func (s *Storage) Breakdown(ctx context.Context, from, to time.Time) ([]storage.ItemTotal, error) {
	q := `SELECT item_name, COUNT(*), COALESCE(SUM(price), 0)
	      FROM sales
	      WHERE sold_at >= ? AND sold_at <= ?
	      GROUP BY item_name
	      ORDER BY SUM(price) DESC`

	rows, err := s.db.QueryContext(ctx, q, s.format(from), s.format(to))
	if err != nil {
		return nil, fmt.Errorf("can't get sales breakdown: %w", err)
	}
	defer rows.Close()

	var items []storage.ItemTotal
	for rows.Next() {
		var it storage.ItemTotal
		var subtotal float64
		if err := rows.Scan(&it.Item, &it.Count, &subtotal); err != nil {
			return nil, fmt.Errorf("can't scan breakdown row: %w", err)
		}
		it.Subtotal = decimal.NewFromFloat(subtotal).Round(2)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) format(t time.Time) string {
	return t.In(s.loc).Format(storage.TimeLayout)
}
