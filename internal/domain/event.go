package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Date        time.Time       `json:"date"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Capacity    int             `json:"capacity"`
	TicketType  string          `json:"ticketType"`
	TicketPrice decimal.Decimal `json:"ticketPrice"`
	IsPaid      bool            `json:"isPaid"`
	BookedUsers []string        `json:"bookedUsers"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (e *Event) HasBooked(username string) bool {
	return slices.Contains(e.BookedUsers, username)
}

func (e *Event) IsFull() bool {
	return len(e.BookedUsers) >= e.Capacity
}

// SyncPaid derives IsPaid from the ticket price.
func (e *Event) SyncPaid() {
	e.IsPaid = e.TicketPrice.IsPositive()
}
