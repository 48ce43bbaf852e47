package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
)

// Cache TTL constants
const (
	VariantCacheTTL  = 5 * time.Minute // stock changes on every import
	LowStockCacheTTL = 1 * time.Minute // alert lists need to be fresh
	SummaryCacheTTL  = 2 * time.Minute // dashboard rollups
)

const cacheKeyPrefix = "backoffice:"

type ProductRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductRepository(db *gorm.DB, redisClient *redis.Client) *ProductRepository {
	return &ProductRepository{db: db, redis: redisClient}
}

// RedisHealth returns the health status of the Redis connection
func (r *ProductRepository) RedisHealth(ctx context.Context) error {
	if r.redis == nil {
		return ErrCacheDisabled
	}
	return r.redis.Ping(ctx).Err()
}

func variantCacheKey(tenantID string, id uuid.UUID) string {
	return fmt.Sprintf("%svariant:%s:%s", cacheKeyPrefix, tenantID, id)
}

// variantCacheKeys lists every key a variant stock write makes stale: the
// per-variant entries plus the tenant's low-stock listing.
func variantCacheKeys(tenantID string, variantIDs ...uuid.UUID) []string {
	keys := make([]string, 0, len(variantIDs)+1)
	for _, id := range variantIDs {
		keys = append(keys, variantCacheKey(tenantID, id))
	}
	return append(keys, fmt.Sprintf("%slowstock:%s", cacheKeyPrefix, tenantID))
}

func (r *ProductRepository) invalidateVariantCaches(ctx context.Context, tenantID string, variantIDs ...uuid.UUID) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, variantCacheKeys(tenantID, variantIDs...)...).Err()
}

// ========== Product Operations ==========

func (r *ProductRepository) CreateProduct(tenantID string, product *models.Product) error {
	product.TenantID = tenantID
	for i := range product.Variants {
		product.Variants[i].TenantID = tenantID
	}
	return r.db.Create(product).Error
}

func (r *ProductRepository) GetProductByID(tenantID string, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Variants").
		First(&product).Error
	return &product, err
}

func (r *ProductRepository) ListProducts(tenantID string, category *string, search string, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	err := query.Preload("Variants").Order("name ASC").Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) UpdateProduct(tenantID string, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

func (r *ProductRepository) DeleteProduct(tenantID string, id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND product_id = ?", tenantID, id).
			Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ========== Variant Operations ==========

func (r *ProductRepository) CreateVariant(tenantID string, variant *models.ProductVariant) error {
	variant.TenantID = tenantID
	return r.db.Create(variant).Error
}

// GetVariantByID retrieves a variant, serving from cache when possible
func (r *ProductRepository) GetVariantByID(tenantID string, id uuid.UUID) (*models.ProductVariant, error) {
	ctx := context.Background()
	cacheKey := variantCacheKey(tenantID, id)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached models.ProductVariant
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	var variant models.ProductVariant
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&variant).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(variant); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, VariantCacheTTL).Err()
		}
	}

	return &variant, nil
}

func (r *ProductRepository) UpdateVariant(tenantID string, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	err := r.db.Model(&models.ProductVariant{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
	if err == nil {
		r.invalidateVariantCaches(context.Background(), tenantID, id)
	}
	return err
}

func (r *ProductRepository) DeleteVariant(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.ProductVariant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateVariantCaches(context.Background(), tenantID, id)
	return nil
}

// FindVariantsBySKUs fetches all variants matching the SKU set in one query.
// This is the batched lookup the import validator runs per upload.
func (r *ProductRepository) FindVariantsBySKUs(tenantID string, skus []string) ([]models.ProductVariant, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	var variants []models.ProductVariant
	err := r.db.Where("tenant_id = ? AND sku IN ?", tenantID, skus).Find(&variants).Error
	return variants, err
}

// AdjustStock applies a manual stock delta with an audit row. The guard on
// decrements keeps stock from going negative even if callers race.
func (r *ProductRepository) AdjustStock(tenantID string, variantID uuid.UUID, delta int, userID string, notes *string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.ProductVariant{}).
			Where("tenant_id = ? AND id = ?", tenantID, variantID)
		if delta < 0 {
			query = query.Where("quantity >= ?", -delta)
		}
		result := query.Update("quantity", gorm.Expr("quantity + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("variant %s: %w", variantID, ErrInsufficientStock)
		}

		movement := models.StockMovement{
			TenantID:  tenantID,
			VariantID: variantID,
			Delta:     delta,
			Reason:    models.StockReasonManualAdjust,
			Notes:     notes,
			CreatedBy: &userID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		return tx.Where("tenant_id = ? AND id = ?", tenantID, variantID).First(&variant).Error
	})
	if err != nil {
		return nil, err
	}
	r.invalidateVariantCaches(context.Background(), tenantID, variantID)
	return &variant, nil
}

// ListLowStock returns variants at or below their low stock threshold
func (r *ProductRepository) ListLowStock(tenantID string) ([]models.ProductVariant, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("%slowstock:%s", cacheKeyPrefix, tenantID)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.ProductVariant
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	var variants []models.ProductVariant
	err := r.db.Where("tenant_id = ? AND low_stock_threshold IS NOT NULL AND quantity <= low_stock_threshold", tenantID).
		Order("quantity ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(variants); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, LowStockCacheTTL).Err()
		}
	}

	return variants, nil
}

// ListStockMovements returns the audit trail for a variant
func (r *ProductRepository) ListStockMovements(tenantID string, variantID uuid.UUID, page, limit int) ([]models.StockMovement, int64, error) {
	var movements []models.StockMovement
	var total int64
	query := r.db.Where("tenant_id = ? AND variant_id = ?", tenantID, variantID)

	if err := query.Model(&models.StockMovement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&movements).Error
	return movements, total, err
}
