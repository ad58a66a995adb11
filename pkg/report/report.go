// Package report computes the shop's fixed reporting windows and renders
// summaries and per-item breakdowns from the sales ledger.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/config"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
)

type Kind int

const (
	Today Kind = iota
	Week
	Month
	AllTime
)

const dateLayout = "2006-01-02"

// Window is an inclusive [Start, End] reporting range.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow covers the calendar day of now, 00:00:00 through 23:59:59.
func DayWindow(now time.Time) Window {
	y, m, d := now.Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, d, 23, 59, 59, 0, now.Location()),
	}
}

// WeekWindow covers the current Monday-to-Sunday week in full, including
// days that have not happened yet.
func WeekWindow(now time.Time) Window {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7 // Sunday; weeks start on Monday
	}
	monday := DayWindow(now.AddDate(0, 0, -(wd - 1)))
	sunday := DayWindow(monday.Start.AddDate(0, 0, 6))
	return Window{Start: monday.Start, End: sunday.End}
}

// MonthWindow covers the 1st of the current month through the current
// day only — month to date, unlike WeekWindow which spans the full week.
func MonthWindow(now time.Time) Window {
	y, m, _ := now.Date()
	return Window{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		End:   DayWindow(now).End,
	}
}

// Report is a computed, never-persisted view over the ledger.
type Report struct {
	Kind    Kind
	Window  Window
	HasData bool // false only for all-time over an empty ledger
	Summary storage.Summary
}

// Reporter answers report requests against the ledger. It holds the shop
// time zone so "today" means the shop's today.
type Reporter struct {
	ledger storage.Ledger
	loc    *time.Location
	msg    config.Responses
	now    func() time.Time
}

func NewReporter(ledger storage.Ledger, loc *time.Location, msg config.Responses) *Reporter {
	return &Reporter{ledger: ledger, loc: loc, msg: msg, now: time.Now}
}

// Summary computes the count/total report for the given window kind.
func (r *Reporter) Summary(ctx context.Context, kind Kind) (*Report, error) {
	w, hasData, err := r.window(ctx, kind)
	if err != nil {
		return nil, err
	}
	rep := &Report{Kind: kind, Window: w, HasData: hasData}
	if !hasData {
		return rep, nil
	}
	if rep.Summary, err = r.ledger.Aggregate(ctx, w.Start, w.End); err != nil {
		return nil, err
	}
	return rep, nil
}

// Breakdown computes the per-item details for the given window kind,
// ordered by subtotal descending.
func (r *Reporter) Breakdown(ctx context.Context, kind Kind) (*Report, []storage.ItemTotal, error) {
	rep, err := r.Summary(ctx, kind)
	if err != nil {
		return nil, nil, err
	}
	if !rep.HasData {
		return rep, nil, nil
	}
	items, err := r.ledger.Breakdown(ctx, rep.Window.Start, rep.Window.End)
	if err != nil {
		return nil, nil, err
	}
	return rep, items, nil
}

func (r *Reporter) window(ctx context.Context, kind Kind) (Window, bool, error) {
	now := r.now().In(r.loc)
	switch kind {
	case Today:
		return DayWindow(now), true, nil
	case Week:
		return WeekWindow(now), true, nil
	case Month:
		return MonthWindow(now), true, nil
	default:
		first, last, ok, err := r.ledger.Extent(ctx)
		if err != nil {
			return Window{}, false, err
		}
		if !ok {
			return Window{}, false, nil
		}
		// Day-granular bounds, the way the window is displayed.
		return Window{Start: DayWindow(first.In(r.loc)).Start, End: DayWindow(last.In(r.loc)).End}, true, nil
	}
}

var summaryHeaders = map[Kind]string{
	Today:   "📊 รายงานวันนี้ / Today report",
	Week:    "📆 รายงานรายสัปดาห์ / Weekly report",
	Month:   "📅 รายงานประจำเดือนนี้ / This month report",
	AllTime: "🗂 รายงานทั้งหมด / All-time report",
}

var detailHeaders = map[Kind]string{
	Today:   "📋 รายละเอียดยอดขายวันนี้ / Today sales details",
	Week:    "📆 รายละเอียดรายสัปดาห์ / Weekly sales details",
	Month:   "📅 รายละเอียดประจำเดือน / Monthly sales details",
	AllTime: "🗂 รายละเอียดทั้งหมด / All-time sales details",
}

// RenderSummary formats a report the way the shop reads it.
func (r *Reporter) RenderSummary(rep *Report) string {
	var b strings.Builder
	b.WriteString(summaryHeaders[rep.Kind])
	b.WriteString("\n")
	b.WriteString(r.dateLine(rep))
	b.WriteString("\n\n")

	count, total := rep.Summary.Count, rep.Summary.Total
	if rep.Kind == AllTime {
		fmt.Fprintf(&b, "ยอดขายรวม: %d แก้ว / %d cups\n", count, count)
		fmt.Fprintf(&b, "ยอดรวมทั้งหมด: %s บาท / %s THB", total.StringFixed(2), total.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "ยอดขาย: %d แก้ว / %d cups\n", count, count)
		fmt.Fprintf(&b, "ยอดรวม: %s บาท / %s THB", total.StringFixed(2), total.StringFixed(2))
	}
	return b.String()
}

// RenderBreakdown formats the per-item details view.
func (r *Reporter) RenderBreakdown(rep *Report, items []storage.ItemTotal) string {
	var b strings.Builder
	b.WriteString(detailHeaders[rep.Kind])
	b.WriteString("\n")
	b.WriteString(r.dateLine(rep))
	b.WriteString("\n\n")

	if !rep.HasData || len(items) == 0 {
		b.WriteString(r.msg.NoSales)
		return b.String()
	}
	for _, it := range items {
		fmt.Fprintf(&b, "%s: %d แก้ว / %d cups – %s บาท / %s THB\n",
			it.Item, it.Count, it.Count, it.Subtotal.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Reporter) dateLine(rep *Report) string {
	if rep.Kind == Today {
		d := rep.Window.Start.Format(dateLayout)
		return fmt.Sprintf("วันที่: %s / Date: %s", d, d)
	}
	start, end := r.msg.NoData, r.msg.NoData
	if rep.HasData {
		start = rep.Window.Start.Format(dateLayout)
		end = rep.Window.End.Format(dateLayout)
	}
	return fmt.Sprintf("ช่วงวันที่: %s ถึง %s / Date range: %s to %s", start, end, start, end)
}
