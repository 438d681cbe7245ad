package entity

import "time"

type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Number    *int
	Customer  string
	Method    string
	Status    string
	Page      int
	PageSize  int
}

type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Refunded   int `json:"refunded"`
	Cancelled  int `json:"cancelled"`
}

type StatusCount struct {
	Status      PaymentStatus `json:"status"`
	Count       int           `json:"count"`
	DisplayName string        `json:"displayName"`
}

type MethodSummary struct {
	Method     string  `json:"paymentMethod"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
}

func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}

	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

type OrderList struct {
	Orders     []Order
	Pagination Pagination
	Summary    Summary
}

type DashboardSummary struct {
	TotalOrders      int             `json:"totalOrders"`
	TodayOrders      int             `json:"todayOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	SuccessfulOrders int             `json:"successfulOrders"`
	SuccessRate      float64         `json:"successRate"`
	PaymentMethods   []MethodSummary `json:"paymentMethods"`
}
