package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
)

// ImportRepositoryInterface is the slice of the order repository the bulk
// import pipeline depends on. The commit methods are each a single
// transaction: either every row and every stock delta lands, or none do.
type ImportRepositoryInterface interface {
	FindVariantsBySKUs(tenantID string, skus []string) ([]models.ProductVariant, error)
	FindExistingOrderIDs(tenantID string, externalIDs []string) ([]string, error)
	FindExistingReturnIDs(tenantID string, externalIDs []string) ([]string, error)
	CommitOrderImport(tenantID string, orders []*models.MarketplaceOrder, stockDeltas map[uuid.UUID]int) error
	CommitReturnImport(tenantID string, returns []*models.MarketplaceReturn) error
}

type OrderRepository struct {
	db       *gorm.DB
	products *ProductRepository
}

var _ ImportRepositoryInterface = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB, products *ProductRepository) *OrderRepository {
	return &OrderRepository{db: db, products: products}
}

// ========== Order CRUD ==========

func (r *OrderRepository) CreateOrder(tenantID string, order *models.MarketplaceOrder) error {
	order.TenantID = tenantID
	order.Total = float64(order.Quantity) * order.SellingPrice
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetOrderByID(tenantID string, id uuid.UUID) (*models.MarketplaceOrder, error) {
	var order models.MarketplaceOrder
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Variant").
		First(&order).Error
	return &order, err
}

// OrderFilter narrows order listings
type OrderFilter struct {
	Platform *models.Platform
	Status   *models.OrderStatus
	From     *time.Time
	To       *time.Time
}

func (r *OrderRepository) ListOrders(tenantID string, filter OrderFilter, page, limit int) ([]models.MarketplaceOrder, int64, error) {
	var orders []models.MarketplaceOrder
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}

	if err := query.Model(&models.MarketplaceOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	err := query.Preload("Variant").Order("order_date DESC").Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) UpdateOrderStatus(tenantID string, id uuid.UUID, status models.OrderStatus) error {
	result := r.db.Model(&models.MarketplaceOrder{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.MarketplaceOrder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========== Return CRUD ==========

// CreateReturn inserts a return and, when the type restocks, applies the
// inventory add-back in the same transaction.
func (r *OrderRepository) CreateReturn(tenantID string, ret *models.MarketplaceReturn) error {
	ret.TenantID = tenantID
	ret.Restocked = ret.ReturnType.Restockable()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ret).Error; err != nil {
			return err
		}
		if !ret.Restocked {
			return nil
		}
		return r.restockTx(tx, tenantID, ret)
	})
}

func (r *OrderRepository) GetReturnByID(tenantID string, id uuid.UUID) (*models.MarketplaceReturn, error) {
	var ret models.MarketplaceReturn
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Variant").
		First(&ret).Error
	return &ret, err
}

// ReturnFilter narrows return listings
type ReturnFilter struct {
	Platform   *models.Platform
	ReturnType *models.ReturnType
	From       *time.Time
	To         *time.Time
}

func (r *OrderRepository) ListReturns(tenantID string, filter ReturnFilter, page, limit int) ([]models.MarketplaceReturn, int64, error) {
	var returns []models.MarketplaceReturn
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.ReturnType != nil {
		query = query.Where("return_type = ?", *filter.ReturnType)
	}
	if filter.From != nil {
		query = query.Where("return_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("return_date <= ?", *filter.To)
	}

	if err := query.Model(&models.MarketplaceReturn{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	err := query.Preload("Variant").Order("return_date DESC").Find(&returns).Error
	return returns, total, err
}

func (r *OrderRepository) DeleteReturn(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.MarketplaceReturn{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========== Import lookups ==========

// FindVariantsBySKUs delegates to the product repository's batched lookup
func (r *OrderRepository) FindVariantsBySKUs(tenantID string, skus []string) ([]models.ProductVariant, error) {
	return r.products.FindVariantsBySKUs(tenantID, skus)
}

// FindExistingOrderIDs returns which of the given external IDs already exist
// (not soft-deleted) for the tenant, in one query.
func (r *OrderRepository) FindExistingOrderIDs(tenantID string, externalIDs []string) ([]string, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&models.MarketplaceOrder{}).
		Where("tenant_id = ? AND external_order_id IN ?", tenantID, externalIDs).
		Pluck("external_order_id", &ids).Error
	return ids, err
}

// FindExistingReturnIDs is the returns counterpart of FindExistingOrderIDs
func (r *OrderRepository) FindExistingReturnIDs(tenantID string, externalIDs []string) ([]string, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&models.MarketplaceReturn{}).
		Where("tenant_id = ? AND external_return_id IN ?", tenantID, externalIDs).
		Pluck("external_return_id", &ids).Error
	return ids, err
}

// ========== Import commits ==========

// CommitOrderImport inserts all accepted orders and applies the aggregated
// stock decrement, one UPDATE per distinct variant, in a single transaction.
// The quantity guard means a concurrent import that already consumed the
// stock fails this whole batch instead of driving the count negative.
func (r *OrderRepository) CommitOrderImport(tenantID string, orders []*models.MarketplaceOrder, stockDeltas map[uuid.UUID]int) error {
	if len(orders) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			order.TenantID = tenantID
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("insert orders: %w", err)
		}

		for variantID, qty := range stockDeltas {
			result := tx.Model(&models.ProductVariant{}).
				Where("tenant_id = ? AND id = ? AND quantity >= ?", tenantID, variantID, qty).
				Update("quantity", gorm.Expr("quantity - ?", qty))
			if result.Error != nil {
				return fmt.Errorf("decrement stock for variant %s: %w", variantID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("variant %s: %w", variantID, ErrInsufficientStock)
			}

			ref := string(models.StockReasonOrderImport)
			movement := models.StockMovement{
				TenantID:  tenantID,
				VariantID: variantID,
				Delta:     -qty,
				Reason:    models.StockReasonOrderImport,
				Reference: &ref,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("record stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.products.invalidateVariantCaches(context.Background(), tenantID, variantIDsFromDeltas(stockDeltas)...)
	return nil
}

// CommitReturnImport inserts all accepted returns in a single transaction.
// Restockable rows get their inventory add-back linked to the insert, one
// update per row.
func (r *OrderRepository) CommitReturnImport(tenantID string, returns []*models.MarketplaceReturn) error {
	if len(returns) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, ret := range returns {
			ret.TenantID = tenantID
			if err := tx.Create(ret).Error; err != nil {
				return fmt.Errorf("insert return %s: %w", ret.ExternalReturnID, err)
			}
			if !ret.Restocked {
				continue
			}
			if err := r.restockTx(tx, tenantID, ret); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if restocked := restockedVariantIDs(returns); len(restocked) > 0 {
		r.products.invalidateVariantCaches(context.Background(), tenantID, restocked...)
	}
	return nil
}

func variantIDsFromDeltas(deltas map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	return ids
}

// restockedVariantIDs collects the distinct variants whose stock a committed
// return batch added back.
func restockedVariantIDs(returns []*models.MarketplaceReturn) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(returns))
	ids := make([]uuid.UUID, 0, len(returns))
	for _, ret := range returns {
		if !ret.Restocked || seen[ret.VariantID] {
			continue
		}
		seen[ret.VariantID] = true
		ids = append(ids, ret.VariantID)
	}
	return ids
}

func (r *OrderRepository) restockTx(tx *gorm.DB, tenantID string, ret *models.MarketplaceReturn) error {
	result := tx.Model(&models.ProductVariant{}).
		Where("tenant_id = ? AND id = ?", tenantID, ret.VariantID).
		Update("quantity", gorm.Expr("quantity + ?", ret.Quantity))
	if result.Error != nil {
		return fmt.Errorf("restock variant %s: %w", ret.VariantID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("restock variant %s: %w", ret.VariantID, gorm.ErrRecordNotFound)
	}

	movement := models.StockMovement{
		TenantID:  tenantID,
		VariantID: ret.VariantID,
		Delta:     ret.Quantity,
		Reason:    models.StockReasonReturnRestock,
		Reference: &ret.ExternalReturnID,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return fmt.Errorf("record stock movement: %w", err)
	}
	return nil
}
