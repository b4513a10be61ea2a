package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user's ticket wallet.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Balance   int64     `json:"balance"`
	TotalWins int64     `json:"totalWins"`
	CreatedAt time.Time `json:"createdAt"`
}

type DrawStatus string

const (
	DrawActive    DrawStatus = "active"
	DrawCompleted DrawStatus = "completed"
	DrawCancelled DrawStatus = "cancelled"
)

// Draw is a prize offering with a ticket quota and a deadline.
//
// Winner fields and Proof are set together, once, when Status becomes
// DrawCompleted. After that TicketsSold and Quota are frozen.
type Draw struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Quota        int64      `json:"quota"`
	TicketsSold  int64      `json:"ticketsSold"`
	MinTickets   int64      `json:"minTickets"`
	PrizeTickets int64      `json:"prizeTickets"`
	Deadline     time.Time  `json:"deadline"`
	Status       DrawStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`

	WinnerAccountID *uuid.UUID `json:"winnerAccountId,omitempty"`
	WinnerEntryID   *uuid.UUID `json:"winnerEntryId,omitempty"`
	Proof           *Proof     `json:"proof,omitempty"`
}

// QuotaMet reports whether enough tickets were sold to run the draw.
func (d *Draw) QuotaMet() bool {
	return d.TicketsSold >= d.Quota
}

// Due reports whether the deadline has passed at now.
func (d *Draw) Due(now time.Time) bool {
	return !d.Deadline.After(now)
}

// Proof is the verification artifact of a winner selection together with
// every input needed to recompute it.
type Proof struct {
	Hash       string    `json:"hash"`
	Salt       string    `json:"salt"`
	SelectedAt time.Time `json:"selectedAt"`
	Roll       int64     `json:"roll"`
	Total      int64     `json:"total"`
}

type EntryStatus string

const (
	EntryActive    EntryStatus = "active"
	EntryWon       EntryStatus = "won"
	EntryProcessed EntryStatus = "processed"
	EntryRefunded  EntryStatus = "refunded"
)

// Entry is one account's ticket commitment to one draw. TicketsSpent never
// changes after creation.
type Entry struct {
	ID           uuid.UUID   `json:"id"`
	AccountID    uuid.UUID   `json:"accountId"`
	DrawID       uuid.UUID   `json:"drawId"`
	TicketsSpent int64       `json:"ticketsSpent"`
	Status       EntryStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type TxCategory string

const (
	TxPurchase TxCategory = "purchase"
	TxSpend    TxCategory = "spend"
	TxWin      TxCategory = "win"
	TxRefund   TxCategory = "refund"
)

// Transaction is an append-only ledger record of one balance change.
type Transaction struct {
	ID               uuid.UUID  `json:"id"`
	AccountID        uuid.UUID  `json:"accountId"`
	Amount           int64      `json:"amount"`
	Category         TxCategory `json:"category"`
	Description      string     `json:"description"`
	DrawID           *uuid.UUID `json:"drawId,omitempty"`
	EntryID          *uuid.UUID `json:"entryId,omitempty"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
