// Package flow drives one sale through its fixed sequence of steps:
// category → item → variant → payment. Every transition validates the
// user's choice against the catalog and keeps the per-user session in
// step; only the final payment step touches the ledger.
package flow

import (
	"context"
	"fmt"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/config"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/menu"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/session"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
)

// Callback identifiers understood by the machine. Selection identifiers
// carry a catalog ID after the prefix, e.g. "cat:c2".
const (
	CategoryPrefix = "cat:"
	ItemPrefix     = "item:"
	VariantPrefix  = "var:"
	PayPrefix      = "pay:"
	DataNewSale    = "new_sale"
	DataCancel     = "cancel"
	DataBack       = "back"
)

// Payment methods accepted at checkout.
const (
	PaymentCash = "cash"
	PaymentQR   = "qr"
)

// Action is one tappable choice offered to the user.
type Action struct {
	Label string
	Data  string
}

// Reply is what a transition hands back to the transport: text to show
// and the actions available next. MainMenu set means the flow is done and
// the transport should offer its main menu instead of step actions.
type Reply struct {
	Text     string
	Actions  []Action
	MainMenu bool
}

type Machine struct {
	catalog  *menu.Catalog
	sessions *session.Store
	ledger   storage.Ledger
	msg      config.Messages
}

func NewMachine(catalog *menu.Catalog, sessions *session.Store, ledger storage.Ledger, msg config.Messages) *Machine {
	return &Machine{catalog: catalog, sessions: sessions, ledger: ledger, msg: msg}
}

// StartSale begins a fresh sale, discarding any selection in progress.
func (m *Machine) StartSale(userID int64) Reply {
	m.sessions.Reset(userID)
	return m.categoryPrompt("")
}

// ChooseCategory handles step 1. An unknown ID means the tapped menu is
// stale (rendered by a previous process), so the same step is re-prompted
// with fresh choices rather than failing the interaction.
func (m *Machine) ChooseCategory(userID int64, categoryID string) (Reply, error) {
	cat, err := m.catalog.Category(categoryID)
	if err != nil {
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	m.sessions.SetCategory(userID, cat.ID, cat.Name)
	return m.itemPrompt(cat, "")
}

// ChooseItem handles step 2.
func (m *Machine) ChooseItem(userID int64, itemID string) (Reply, error) {
	s := m.sessions.Get(userID)
	if s.CategoryID == "" {
		m.sessions.Reset(userID)
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	cat, err := m.catalog.Category(s.CategoryID)
	if err != nil {
		m.sessions.Reset(userID)
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	item, err := m.catalog.Item(s.CategoryID, itemID)
	if err != nil {
		return m.itemPrompt(cat, m.msg.Responses.StalePrompt)
	}
	if err := m.sessions.SetItem(userID, item.ID, item.Name); err != nil {
		return Reply{}, fmt.Errorf("choose item: %w", err)
	}
	return m.variantPrompt(cat, item, "")
}

// ChooseVariant handles step 3. The price is resolved from the catalog
// here; nothing the client sends ever carries a price.
func (m *Machine) ChooseVariant(userID int64, variantID string) (Reply, error) {
	s := m.sessions.Get(userID)
	if s.ItemID == "" {
		m.sessions.Reset(userID)
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	cat, catErr := m.catalog.Category(s.CategoryID)
	item, itemErr := m.catalog.Item(s.CategoryID, s.ItemID)
	if catErr != nil || itemErr != nil {
		m.sessions.Reset(userID)
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	v, err := m.catalog.Variant(s.CategoryID, s.ItemID, variantID)
	if err != nil {
		return m.variantPrompt(cat, item, m.msg.Responses.StalePrompt)
	}
	if err := m.sessions.SetVariant(userID, v.ID, v.Name, v.Price); err != nil {
		return Reply{}, fmt.Errorf("choose variant: %w", err)
	}
	return m.paymentPrompt(m.sessions.Get(userID), ""), nil
}

// ChoosePayment handles step 4: it writes the sale to the ledger, resets
// the session and confirms. On a storage failure the session is left
// untouched so the same step can simply be retried.
func (m *Machine) ChoosePayment(ctx context.Context, userID int64, method string) (Reply, error) {
	s := m.sessions.Get(userID)
	if s.VariantID == "" {
		m.sessions.Reset(userID)
		return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
	}
	if method != PaymentCash && method != PaymentQR {
		return m.paymentPrompt(s, m.msg.Responses.StalePrompt), nil
	}

	sale := &storage.Sale{
		Item:     s.Item,
		Category: s.Category,
		Variant:  s.Variant,
		Price:    s.Price,
		Payment:  method,
	}
	if _, err := m.ledger.Record(ctx, sale); err != nil {
		return m.paymentPrompt(s, m.msg.Responses.SaveFailed), fmt.Errorf("record sale: %w", err)
	}

	m.sessions.Reset(userID)
	text := fmt.Sprintf(m.msg.Responses.SaleSaved, s.Item, s.Variant, s.Price.StringFixed(2), method)
	return Reply{Text: text, MainMenu: true}, nil
}

// Cancel aborts the sale from any step. Nothing is written.
func (m *Machine) Cancel(userID int64) Reply {
	m.sessions.Reset(userID)
	return Reply{Text: m.msg.Responses.Cancelled, MainMenu: true}
}

// Back steps one menu back, clearing only the field being un-chosen.
func (m *Machine) Back(userID int64) (Reply, error) {
	s := m.sessions.Get(userID)
	switch s.State() {
	case session.StateVariantChosen:
		m.sessions.ClearVariant(userID)
		cat, catErr := m.catalog.Category(s.CategoryID)
		item, itemErr := m.catalog.Item(s.CategoryID, s.ItemID)
		if catErr != nil || itemErr != nil {
			m.sessions.Reset(userID)
			return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
		}
		return m.variantPrompt(cat, item, "")
	case session.StateItemChosen:
		m.sessions.ClearItem(userID)
		cat, err := m.catalog.Category(s.CategoryID)
		if err != nil {
			m.sessions.Reset(userID)
			return m.categoryPrompt(m.msg.Responses.StalePrompt), nil
		}
		return m.itemPrompt(cat, "")
	default:
		// CategoryChosen (or already idle): back to the very start.
		m.sessions.Reset(userID)
		return m.categoryPrompt(""), nil
	}
}

// ---------------------------------------------------------------------------
// Step prompts
// ---------------------------------------------------------------------------

func (m *Machine) categoryPrompt(prefix string) Reply {
	actions := make([]Action, 0, len(m.catalog.Categories())+1)
	for _, cat := range m.catalog.Categories() {
		actions = append(actions, Action{Label: cat.Name, Data: CategoryPrefix + cat.ID})
	}
	actions = append(actions, Action{Label: m.msg.Buttons.Cancel, Data: DataCancel})
	return Reply{Text: withPrefix(prefix, m.msg.Responses.StepCategory), Actions: actions}
}

func (m *Machine) itemPrompt(cat *menu.Category, prefix string) (Reply, error) {
	items, err := m.catalog.Items(cat.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("item prompt: %w", err)
	}
	actions := make([]Action, 0, len(items)+2)
	for _, item := range items {
		actions = append(actions, Action{Label: item.Name, Data: ItemPrefix + item.ID})
	}
	actions = append(actions,
		Action{Label: m.msg.Buttons.Back, Data: DataBack},
		Action{Label: m.msg.Buttons.Cancel, Data: DataCancel},
	)
	text := fmt.Sprintf(m.msg.Responses.StepItem, cat.Name)
	return Reply{Text: withPrefix(prefix, text), Actions: actions}, nil
}

func (m *Machine) variantPrompt(cat *menu.Category, item *menu.Item, prefix string) (Reply, error) {
	variants, err := m.catalog.Variants(cat.ID, item.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("variant prompt: %w", err)
	}
	actions := make([]Action, 0, len(variants)+2)
	for _, v := range variants {
		actions = append(actions, Action{Label: v.Name, Data: VariantPrefix + v.ID})
	}
	actions = append(actions,
		Action{Label: m.msg.Buttons.Back, Data: DataBack},
		Action{Label: m.msg.Buttons.Cancel, Data: DataCancel},
	)
	text := fmt.Sprintf(m.msg.Responses.StepVariant, cat.Name, item.Name)
	return Reply{Text: withPrefix(prefix, text), Actions: actions}, nil
}

func (m *Machine) paymentPrompt(s session.Session, prefix string) Reply {
	text := fmt.Sprintf(m.msg.Responses.StepPayment, s.Category, s.Item, s.Variant, s.Price.StringFixed(2))
	return Reply{
		Text: withPrefix(prefix, text),
		Actions: []Action{
			{Label: m.msg.Buttons.Cash, Data: PayPrefix + PaymentCash},
			{Label: m.msg.Buttons.QR, Data: PayPrefix + PaymentQR},
			{Label: m.msg.Buttons.Back, Data: DataBack},
			{Label: m.msg.Buttons.Cancel, Data: DataCancel},
		},
	}
}

func withPrefix(prefix, text string) string {
	if prefix == "" {
		return text
	}
	return prefix + "\n\n" + text
}
