// Package session keeps each user's in-progress sale until checkout or
// cancellation. State is in-memory only and scoped to the process.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrOutOfOrder means a field was set before its parent field. The state
// machine owns the step ordering, so hitting this is a programming error,
// not user input.
var ErrOutOfOrder = errors.New("session mutated out of order")

type State int

const (
	StateIdle State = iota
	StateCategoryChosen
	StateItemChosen
	StateVariantChosen
)

// Session is a snapshot of one user's selection so far. IDs are the
// catalog's stable identifiers; names are kept alongside for rendering
// and for the final sale record.
type Session struct {
	CategoryID string
	Category   string
	ItemID     string
	Item       string
	VariantID  string
	Variant    string
	Price      decimal.Decimal
}

// State derives the selection step from which fields are populated.
func (s Session) State() State {
	switch {
	case s.VariantID != "":
		return StateVariantChosen
	case s.ItemID != "":
		return StateItemChosen
	case s.CategoryID != "":
		return StateCategoryChosen
	default:
		return StateIdle
	}
}

// Store holds sessions keyed by user ID. All access goes through the
// store's lock; sessions are isolated per user and never shared.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[int64]*entry
}

type entry struct {
	s       Session
	touched time.Time
}

// NewStore creates a store. A positive ttl evicts sessions idle for
// longer than ttl on next access; ttl 0 disables eviction.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[int64]*entry),
	}
}

// Get returns a copy of the user's session, creating an empty one on
// first access.
func (st *Store) Get(userID int64) Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.get(userID).s
}

// Reset clears the user's session. Safe to call repeatedly.
func (st *Store) Reset(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	e.s = Session{}
}

// SetCategory records the chosen category and drops any deeper fields
// left from a previous selection.
func (st *Store) SetCategory(userID int64, id, name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	e.s = Session{CategoryID: id, Category: name}
}

// SetItem records the chosen item. The category must already be set.
func (st *Store) SetItem(userID int64, id, name string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	if e.s.CategoryID == "" {
		return ErrOutOfOrder
	}
	e.s.ItemID = id
	e.s.Item = name
	e.s.VariantID = ""
	e.s.Variant = ""
	e.s.Price = decimal.Decimal{}
	return nil
}

// SetVariant records the chosen variant and its catalog price. The item
// must already be set.
func (st *Store) SetVariant(userID int64, id, name string, price decimal.Decimal) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	if e.s.ItemID == "" {
		return ErrOutOfOrder
	}
	e.s.VariantID = id
	e.s.Variant = name
	e.s.Price = price
	return nil
}

// ClearVariant un-chooses the variant, keeping category and item.
func (st *Store) ClearVariant(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	e.s.VariantID = ""
	e.s.Variant = ""
	e.s.Price = decimal.Decimal{}
}

// ClearItem un-chooses the item (and with it any variant), keeping the
// category.
func (st *Store) ClearItem(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e := st.get(userID)
	e.s.ItemID = ""
	e.s.Item = ""
	e.s.VariantID = ""
	e.s.Variant = ""
	e.s.Price = decimal.Decimal{}
}

// get returns the live entry for userID, evicting a stale one first.
// Callers must hold st.mu.
func (st *Store) get(userID int64) *entry {
	now := st.now()
	e, ok := st.sessions[userID]
	if ok && st.ttl > 0 && now.Sub(e.touched) > st.ttl {
		delete(st.sessions, userID)
		ok = false
	}
	if !ok {
		e = &entry{}
		st.sessions[userID] = e
	}
	e.touched = now
	return e
}
