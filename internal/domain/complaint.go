package domain

import "time"

type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "pending"
	ComplaintStatusResolved ComplaintStatus = "resolved"
)

type Complaint struct {
	ID               int32           `json:"id"`
	UserID           int32           `json:"userId"`
	Username         string          `json:"username"`
	ComplaintType    string          `json:"complaintType"`
	ComplaintDetails string          `json:"complaintDetails"`
	Status           ComplaintStatus `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}
