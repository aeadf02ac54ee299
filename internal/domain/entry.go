package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryKindIncome   EntryKind = "INCOME"
	EntryKindExpense  EntryKind = "EXPENSE"
	EntryKindTransfer EntryKind = "TRANSFER"
)

// TransferDirection is how a stored transfer reads from one participant's side.
type TransferDirection string

const (
	TransferOutgoing TransferDirection = "OUTGOING"
	TransferIncoming TransferDirection = "INCOMING"
)

// LedgerEntry is a single money movement in a home: an income, an expense, or
// a peer-to-peer transfer between two members. A transfer is stored exactly
// once; the participant-specific reading is resolved at list time.
type LedgerEntry struct {
	ID          int32           `json:"id"`
	HomeID      int32           `json:"home_id"`
	CreatedByID int32           `json:"created_by_id"`
	Kind        EntryKind       `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Title       string          `json:"title,omitempty"`
	CategoryID  *int32          `json:"category_id,omitempty"` // nil for transfers
	CardID      *int32          `json:"card_id,omitempty"`     // expense only
	IsShared    bool            `json:"is_shared"`
	IsRecurring bool            `json:"is_recurring"`
	FromUserID  *int32          `json:"from_user_id,omitempty"` // transfer only
	ToUserID    *int32          `json:"to_user_id,omitempty"`   // transfer only
	CreatedOn   time.Time       `json:"created_on"`
}

// ReservedTransferCategory labels transfer rows in listings. Transfers store
// no category row; the label is attached at view time. The word is the same
// in Turkish and English.
const ReservedTransferCategory = "Transfer"

// EntryView is a LedgerEntry as seen by one viewer. For income and expense it
// is the entry unchanged; for a transfer it carries the viewer's direction,
// the other participant, and the reserved category label.
type EntryView struct {
	LedgerEntry
	Direction        TransferDirection `json:"direction,omitempty"`
	CounterpartyID   int32             `json:"counterparty_id,omitempty"`
	CounterpartyName string            `json:"counterparty_name,omitempty"`
	CategoryLabel    string            `json:"category_label,omitempty"`
}

// Page carries pagination metadata alongside a listing.
type Page struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int32 `json:"total"`
	TotalPages int32 `json:"total_pages"`
}

func NewPage(page, limit, total int32) Page {
	if limit <= 0 {
		limit = 1
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Page{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
