package models

import "github.com/shopspring/decimal"

// NoYesterdayData is shown instead of a growth figure when there is nothing to compare with.
const NoYesterdayData = "No data for yesterday"

// Growth compares today with yesterday. Percent is nil when yesterday is empty.
type Growth struct {
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Label   string           `json:"label"`
}

// TopItem is the most sold item of a period.
type TopItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RecentOrder is a row of the recent activity table.
type RecentOrder struct {
	OrderID      string          `json:"order_id"`
	Timestamp    int64           `json:"timestamp"`
	Server       string          `json:"server"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Status       string          `json:"status"`
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	TodaySales      decimal.Decimal `json:"today_sales"`
	YesterdaySales  decimal.Decimal `json:"yesterday_sales"`
	SalesGrowth     Growth          `json:"sales_growth"`
	TodayOrders     int             `json:"today_orders"`
	YesterdayOrders int             `json:"yesterday_orders"`
	OrdersGrowth    Growth          `json:"orders_growth"`
	TotalStaff      int             `json:"total_staff"`
	TopItem         TopItem         `json:"top_item"`
	RecentOrders    []RecentOrder   `json:"recent_orders"`
	Currency        string          `json:"currency"`
}

// SalesRow is one sale in the daily report table.
type SalesRow struct {
	OrderID      string          `json:"order_id"`
	Timestamp    int64           `json:"timestamp"`
	Items        string          `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

// DailyReport is revenue against expenses for one calendar date.
type DailyReport struct {
	Date           string          `json:"date"` // YYYY-MM-DD
	Revenue        decimal.Decimal `json:"revenue"`
	Expenses       decimal.Decimal `json:"expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	LifetimeProfit decimal.Decimal `json:"lifetime_profit"`
	TopItem        TopItem         `json:"top_item"`
	Sales          []SalesRow      `json:"sales"`
	Currency       string          `json:"currency"`
}
