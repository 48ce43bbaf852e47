package models

import (
	"time"

	"github.com/google/uuid"
)

// DashboardSummary aggregates the headline numbers for a date range
type DashboardSummary struct {
	Revenue       float64 `json:"revenue"`
	OrderCount    int64   `json:"orderCount"`
	UnitsSold     int64   `json:"unitsSold"`
	RefundTotal   float64 `json:"refundTotal"`
	ReturnCount   int64   `json:"returnCount"`
	ExpenseTotal  float64 `json:"expenseTotal"`
	PayoutNet     float64 `json:"payoutNet"`
	GrossProfit   float64 `json:"grossProfit"`
	LowStockCount int64   `json:"lowStockCount"`
}

// SalesTrendPoint is one bucket of a date-bucketed sales rollup
type SalesTrendPoint struct {
	Bucket     time.Time `json:"bucket"`
	Revenue    float64   `json:"revenue"`
	OrderCount int64     `json:"orderCount"`
	UnitsSold  int64     `json:"unitsSold"`
}

// TopVariant is one row in the top-sellers rollup
type TopVariant struct {
	VariantID uuid.UUID `json:"variantId"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UnitsSold int64     `json:"unitsSold"`
	Revenue   float64   `json:"revenue"`
}

type SummaryResponse struct {
	Success bool              `json:"success"`
	Data    *DashboardSummary `json:"data,omitempty"`
}

type SalesTrendResponse struct {
	Success bool              `json:"success"`
	Data    []SalesTrendPoint `json:"data"`
}

type TopVariantsResponse struct {
	Success bool         `json:"success"`
	Data    []TopVariant `json:"data"`
}
