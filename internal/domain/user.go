package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Capability names one admin permission flag.
type Capability string

const (
	CapManageUsers        Capability = "manageUsers"
	CapManageEvents       Capability = "manageEvents"
	CapManageStore        Capability = "manageStore"
	CapManageComplaints   Capability = "manageComplaints"
	CapManageBills        Capability = "manageBills"
	CapManageAppointments Capability = "manageAppointments"
	CapViewReports        Capability = "viewReports"
)

type Permissions struct {
	ManageUsers        bool `json:"manageUsers"`
	ManageEvents       bool `json:"manageEvents"`
	ManageStore        bool `json:"manageStore"`
	ManageComplaints   bool `json:"manageComplaints"`
	ManageBills        bool `json:"manageBills"`
	ManageAppointments bool `json:"manageAppointments"`
	ViewReports        bool `json:"viewReports"`
}

// AllPermissions grants every capability.
func AllPermissions() Permissions {
	return Permissions{true, true, true, true, true, true, true}
}

func (p Permissions) Has(c Capability) bool {
	switch c {
	case CapManageUsers:
		return p.ManageUsers
	case CapManageEvents:
		return p.ManageEvents
	case CapManageStore:
		return p.ManageStore
	case CapManageComplaints:
		return p.ManageComplaints
	case CapManageBills:
		return p.ManageBills
	case CapManageAppointments:
		return p.ManageAppointments
	case CapViewReports:
		return p.ViewReports
	}
	return false
}

// PermissionsPatch carries only the flags a caller wants to change.
type PermissionsPatch struct {
	ManageUsers        *bool `json:"manageUsers,omitempty"`
	ManageEvents       *bool `json:"manageEvents,omitempty"`
	ManageStore        *bool `json:"manageStore,omitempty"`
	ManageComplaints   *bool `json:"manageComplaints,omitempty"`
	ManageBills        *bool `json:"manageBills,omitempty"`
	ManageAppointments *bool `json:"manageAppointments,omitempty"`
	ViewReports        *bool `json:"viewReports,omitempty"`
}

// Merge applies the non-nil flags of patch.
func (p *Permissions) Merge(patch PermissionsPatch) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.ManageUsers, patch.ManageUsers)
	set(&p.ManageEvents, patch.ManageEvents)
	set(&p.ManageStore, patch.ManageStore)
	set(&p.ManageComplaints, patch.ManageComplaints)
	set(&p.ManageBills, patch.ManageBills)
	set(&p.ManageAppointments, patch.ManageAppointments)
	set(&p.ViewReports, patch.ViewReports)
}

// Value stores permissions as JSONB.
func (p Permissions) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Permissions) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Permissions{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return fmt.Errorf("cannot scan %T into Permissions", src)
}

type House struct {
	MarlaSize int    `json:"marlaSize"`
	Choice    string `json:"choice,omitempty"`
}

type User struct {
	ID           int32           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Balance      decimal.Decimal `json:"balance"`
	House        House           `json:"house"`
	Role         Role            `json:"role"`
	Permissions  Permissions     `json:"permissions"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
