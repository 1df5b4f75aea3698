package models

import "time"

// DateWindow bounds a dashboard query. A nil bound is open.
type DateWindow struct {
	Start *time.Time
	End   *time.Time
}

// PeriodMetrics is one calendar-day bucket of orders_by_period.
type PeriodMetrics struct {
	Count   int     `bson:"count"   json:"count"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type TopProduct struct {
	ProductID   string `bson:"product_id"   json:"product_id"`
	ProductName string `bson:"product_name" json:"product_name"`
	Count       int    `bson:"count"        json:"count"`
}

type CategoryRevenue struct {
	CategoryID   string  `bson:"category_id"   json:"category_id"`
	CategoryName string  `bson:"category_name" json:"category_name"`
	Revenue      float64 `bson:"revenue"       json:"revenue"`
}

// DashboardMetrics is the consolidated report served by /dashboard.
type DashboardMetrics struct {
	TotalOrders       int64                    `json:"total_orders"`
	AverageOrderValue float64                  `json:"average_order_value"`
	TotalRevenue      float64                  `json:"total_revenue"`
	OrdersByPeriod    map[string]PeriodMetrics `json:"orders_by_period"`
	TopProducts       []TopProduct             `json:"top_products"`
	RevenueByCategory []CategoryRevenue        `json:"revenue_by_category"`
}
