package domain

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalUsers        int64           `json:"totalUsers"`
	TotalComplaints   int64           `json:"totalComplaints"`
	PendingComplaints int64           `json:"pendingComplaints"`
	TotalEvents       int64           `json:"totalEvents"`
	TotalProducts     int64           `json:"totalProducts"`
	TotalOrders       int64           `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

type Dashboard struct {
	Stats            DashboardStats `json:"stats"`
	RecentComplaints []Complaint    `json:"recentComplaints"`
	RecentOrders     []Order        `json:"recentOrders"`
}
