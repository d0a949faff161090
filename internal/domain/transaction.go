package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeEventBooking  TransactionType = "event_booking"
	TransactionTypeBillPayment   TransactionType = "bill_payment"
	TransactionTypeStorePurchase TransactionType = "store_purchase"
	TransactionTypeBalanceAdded  TransactionType = "balance_added"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusPending   TransactionStatus = "pending"
)

// Transaction is an append-only audit record of a balance change.
type Transaction struct {
	ID            int32             `json:"id"`
	Reference     string            `json:"reference"`
	UserID        int32             `json:"userId"`
	Username      string            `json:"username"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	RelatedID     *int32            `json:"relatedId,omitempty"`
	BalanceBefore decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal   `json:"balanceAfter"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}
