package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillType string

const (
	BillTypeElectricity BillType = "electricity"
	BillTypeGas         BillType = "gas"
	BillTypeSecurity    BillType = "security"
)

// MonthlyBillTypes are generated for every resident each month.
var MonthlyBillTypes = []BillType{BillTypeElectricity, BillTypeGas}

type Bill struct {
	ID           int32           `json:"id"`
	UserID       int32           `json:"userId"`
	Username     string          `json:"username"`
	BillType     BillType        `json:"billType"`
	Amount       decimal.Decimal `json:"amount"`
	BillingMonth string          `json:"billingMonth"` // Format: 'YYYY-MM'
	DueDate      time.Time       `json:"dueDate"`
	IsPaid       bool            `json:"isPaid"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
	Penalty      decimal.Decimal `json:"penalty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BillingMonth formats t as the 'YYYY-MM' key bills are grouped by.
func BillingMonth(t time.Time) string {
	return t.Format("2006-01")
}
