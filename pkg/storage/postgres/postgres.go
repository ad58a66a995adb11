// Package postgres implements the Ledger on PostgreSQL for shops that
// already run one; semantics match the sqlite backend exactly.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/shopspring/decimal"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
)

type Storage struct {
	db  *sql.DB
	loc *time.Location
}

// New connects to PostgreSQL using connStr.
func New(connStr string, loc *time.Location) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
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
		id SERIAL PRIMARY KEY,
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
	      VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id uint
	err := s.db.QueryRowContext(ctx, q,
		at.In(s.loc).Format(storage.TimeLayout),
		sale.Item, sale.Category, sale.Variant, sale.Price.StringFixed(2), sale.Payment,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("can't save sale: %w", err)
	}
	return id, nil
}

// Aggregate returns count and total for sales in [from, to] inclusive.
func (s *Storage) Aggregate(ctx context.Context, from, to time.Time) (storage.Summary, error) {
	q := `SELECT COUNT(*), COALESCE(SUM(price), 0) FROM sales WHERE sold_at >= $1 AND sold_at <= $2`

	var count int
	var total string
	err := s.db.QueryRowContext(ctx, q, s.format(from), s.format(to)).Scan(&count, &total)
	if err != nil {
		return storage.Summary{}, fmt.Errorf("can't aggregate sales: %w", err)
	}
	sum, err := decimal.NewFromString(total)
	if err != nil {
		return storage.Summary{}, fmt.Errorf("can't parse sales total: %w", err)
	}
	return storage.Summary{Count: count, Total: sum}, nil
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
	      WHERE sold_at >= $1 AND sold_at <= $2
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
		var subtotal string
		if err := rows.Scan(&it.Item, &it.Count, &subtotal); err != nil {
			return nil, fmt.Errorf("can't scan breakdown row: %w", err)
		}
		if it.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("can't parse item subtotal: %w", err)
		}
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
