package models

import "time"

// ReportPeriod selects the aggregation window of a sale report
type ReportPeriod string

const (
	PeriodToday ReportPeriod = "today"
	PeriodWeek  ReportPeriod = "week"  // last 7 calendar days, today inclusive
	PeriodMonth ReportPeriod = "month" // last 30 calendar days, today inclusive
)

// TopItem is one row of the best-sellers ranking
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailyStat is the aggregate for one calendar day of the report window.
// Days with no sales are still present with zero values.
type DailyStat struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// TopCustomer is one row of the customer spend ranking, keyed by
// "name (hostel)" exactly as the vendor sees it
type TopCustomer struct {
	Customer   string  `json:"customer"`
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"total_spent"`
}

// SaleReport is the full windowed statistics bundle
type SaleReport struct {
	Period                ReportPeriod  `json:"period"`
	TotalSales            float64       `json:"total_sales"`
	TotalOrders           int           `json:"total_orders"`
	AverageOrderValue     float64       `json:"average_order_value"`
	TotalProfit           float64       `json:"total_profit"`
	ProfitMargin          float64       `json:"profit_margin"`
	TopItems              []TopItem     `json:"top_items"`
	DailyStats            []DailyStat   `json:"daily_stats"`
	TotalItemsSold        int           `json:"total_items_sold"`
	AverageProfitPerOrder float64       `json:"average_profit_per_order"`
	TopCustomers          []TopCustomer `json:"top_customers"`
	ChartData             []ChartSlice  `json:"chart_data"`
	GeneratedAt           time.Time     `json:"generated_at"`
	Stale                 bool          `json:"stale,omitempty"` // true when serving the last good report after a store failure
}

// ChartSlice is one ranked slice of the category breakdown. Color is picked
// by cycling a fixed palette in rank order; rendering is up to the client.
type ChartSlice struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
	Color string  `json:"color"`
}

// TodaySummary backs the dashboard header and pie chart
type TodaySummary struct {
	TotalSales   float64      `json:"total_sales"`
	TotalOrders  int          `json:"total_orders"`
	TotalProfit  float64      `json:"total_profit"`
	TotalCost    float64      `json:"total_cost"`
	ProfitMargin float64      `json:"profit_margin"`
	Slices       []ChartSlice `json:"pie_chart_data"`
	Stale        bool         `json:"stale,omitempty"` // true when serving the last good summary after a store failure
}
