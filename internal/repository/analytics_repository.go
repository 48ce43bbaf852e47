package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
)

// TrendInterval selects the bucket width for sales rollups
type TrendInterval string

const (
	TrendIntervalDay   TrendInterval = "day"
	TrendIntervalWeek  TrendInterval = "week"
	TrendIntervalMonth TrendInterval = "month"
)

// ParseTrendInterval normalizes a raw interval value, defaulting to day
func ParseTrendInterval(s string) TrendInterval {
	switch TrendInterval(s) {
	case TrendIntervalWeek, TrendIntervalMonth:
		return TrendInterval(s)
	}
	return TrendIntervalDay
}

type AnalyticsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewAnalyticsRepository(db *gorm.DB, redisClient *redis.Client) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, redis: redisClient}
}

// GetSummary aggregates the dashboard headline numbers for a date range.
// Cancelled orders are excluded from revenue. Served from cache when fresh.
func (r *AnalyticsRepository) GetSummary(tenantID string, from, to time.Time) (*models.DashboardSummary, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("%ssummary:%s:%s:%s", cacheKeyPrefix, tenantID,
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached models.DashboardSummary
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	var summary models.DashboardSummary

	row := r.db.Model(&models.MarketplaceOrder{}).
		Where("tenant_id = ? AND order_date >= ? AND order_date <= ? AND status <> ?",
			tenantID, from, to, models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0), COUNT(*), COALESCE(SUM(quantity), 0)").
		Row()
	if err := row.Scan(&summary.Revenue, &summary.OrderCount, &summary.UnitsSold); err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}

	row = r.db.Model(&models.MarketplaceReturn{}).
		Where("tenant_id = ? AND return_date >= ? AND return_date <= ?", tenantID, from, to).
		Select("COALESCE(SUM(refund_amount), 0), COUNT(*)").
		Row()
	if err := row.Scan(&summary.RefundTotal, &summary.ReturnCount); err != nil {
		return nil, fmt.Errorf("return summary: %w", err)
	}

	err := r.db.Model(&models.Expense{}).
		Where("tenant_id = ? AND expense_date >= ? AND expense_date <= ?", tenantID, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.ExpenseTotal).Error
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}

	err = r.db.Model(&models.PlatformPayout{}).
		Where("tenant_id = ? AND payout_date >= ? AND payout_date <= ?", tenantID, from, to).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&summary.PayoutNet).Error
	if err != nil {
		return nil, fmt.Errorf("payout summary: %w", err)
	}

	err = r.db.Model(&models.ProductVariant{}).
		Where("tenant_id = ? AND low_stock_threshold IS NOT NULL AND quantity <= low_stock_threshold", tenantID).
		Count(&summary.LowStockCount).Error
	if err != nil {
		return nil, fmt.Errorf("low stock count: %w", err)
	}

	summary.GrossProfit = summary.Revenue - summary.RefundTotal - summary.ExpenseTotal

	if r.redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, SummaryCacheTTL).Err()
		}
	}

	return &summary, nil
}

// GetSalesTrend returns a date-bucketed revenue rollup
func (r *AnalyticsRepository) GetSalesTrend(tenantID string, from, to time.Time, interval TrendInterval) ([]models.SalesTrendPoint, error) {
	var points []models.SalesTrendPoint
	err := r.db.Model(&models.MarketplaceOrder{}).
		Where("tenant_id = ? AND order_date >= ? AND order_date <= ? AND status <> ?",
			tenantID, from, to, models.OrderStatusCancelled).
		Select("date_trunc(?, order_date) AS bucket, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS order_count, COALESCE(SUM(quantity), 0) AS units_sold", string(interval)).
		Group("bucket").
		Order("bucket ASC").
		Scan(&points).Error
	return points, err
}

// GetTopVariants returns the best sellers by units for a date range
func (r *AnalyticsRepository) GetTopVariants(tenantID string, from, to time.Time, limit int) ([]models.TopVariant, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.TopVariant
	err := r.db.Model(&models.MarketplaceOrder{}).
		Joins("JOIN product_variants pv ON pv.id = marketplace_orders.variant_id").
		Where("marketplace_orders.tenant_id = ? AND order_date >= ? AND order_date <= ? AND marketplace_orders.status <> ?",
			tenantID, from, to, models.OrderStatusCancelled).
		Select("marketplace_orders.variant_id, pv.sku, pv.name, COALESCE(SUM(marketplace_orders.quantity), 0) AS units_sold, COALESCE(SUM(marketplace_orders.total), 0) AS revenue").
		Group("marketplace_orders.variant_id, pv.sku, pv.name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
