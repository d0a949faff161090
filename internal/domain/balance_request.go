package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceRequestStatus string

const (
	BalanceRequestPending  BalanceRequestStatus = "pending"
	BalanceRequestApproved BalanceRequestStatus = "approved"
	BalanceRequestRejected BalanceRequestStatus = "rejected"
)

type BalanceRequest struct {
	ID              int32                `json:"id"`
	UserID          int32                `json:"userId"`
	Username        string               `json:"username"`
	UserEmail       string               `json:"userEmail"`
	UserPhone       string               `json:"userPhone"`
	RequestedAmount decimal.Decimal      `json:"requestedAmount"`
	Reason          string               `json:"reason"`
	Status          BalanceRequestStatus `json:"status"`
	AdminNotes      string               `json:"adminNotes"`
	ProcessedBy     string               `json:"processedBy,omitempty"`
	ProcessedAt     *time.Time           `json:"processedAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}
