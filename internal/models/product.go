package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Product represents a catalog product grouping one or more variants
type Product struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string        `json:"tenantId" gorm:"type:varchar(255);not null;index;index:idx_products_tenant_name"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null;index:idx_products_tenant_name"`
	Description *string       `json:"description,omitempty" gorm:"type:text"`
	Category    *string       `json:"category,omitempty" gorm:"type:varchar(100);index"`
	Brand       *string       `json:"brand,omitempty" gorm:"type:varchar(100)"`
	Status      ProductStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HSNCode     *string       `json:"hsnCode,omitempty" gorm:"type:varchar(10)"`

	// Audit fields
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`
	UpdatedBy *string         `json:"updatedBy,omitempty"`

	// Relations
	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductVariant represents a sellable SKU with its own stock count
type ProductVariant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string    `json:"tenantId" gorm:"type:varchar(255);not null;index;uniqueIndex:idx_variants_tenant_sku"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	SKU       string    `json:"sku" gorm:"type:varchar(100);not null;uniqueIndex:idx_variants_tenant_sku"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`

	// Pricing
	SellingPrice   float64  `json:"sellingPrice" gorm:"type:decimal(10,2);not null;default:0"`
	CostPrice      *float64 `json:"costPrice,omitempty" gorm:"type:decimal(10,2)"`
	WholesalePrice *float64 `json:"wholesalePrice,omitempty" gorm:"type:decimal(10,2)"`

	// Stock
	Quantity          int  `json:"quantity" gorm:"not null;default:0"`
	LowStockThreshold *int `json:"lowStockThreshold,omitempty"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// StockMovementReason identifies what caused a stock delta
type StockMovementReason string

const (
	StockReasonOrderImport   StockMovementReason = "ORDER_IMPORT"
	StockReasonReturnRestock StockMovementReason = "RETURN_RESTOCK"
	StockReasonManualAdjust  StockMovementReason = "MANUAL_ADJUST"
	StockReasonPurchase      StockMovementReason = "VENDOR_PURCHASE"
)

// StockMovement is an append-only audit row for every stock delta
type StockMovement struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string              `json:"tenantId" gorm:"type:varchar(255);not null;index"`
	VariantID uuid.UUID           `json:"variantId" gorm:"type:uuid;not null;index"`
	Delta     int                 `json:"delta" gorm:"not null"`
	Reason    StockMovementReason `json:"reason" gorm:"type:varchar(30);not null"`
	Reference *string             `json:"reference,omitempty" gorm:"type:varchar(255)"`
	Notes     *string             `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy *string             `json:"createdBy,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

func (Product) TableName() string {
	return "products"
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// Request models

type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=255"`
	Description *string                `json:"description,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Brand       *string                `json:"brand,omitempty"`
	Status      *ProductStatus         `json:"status,omitempty"`
	HSNCode     *string                `json:"hsnCode,omitempty"`
	Variants    []CreateVariantRequest `json:"variants,omitempty"`
}

type CreateVariantRequest struct {
	SKU               string   `json:"sku" binding:"required,min=1,max=100"`
	Name              string   `json:"name" binding:"required,min=1,max=255"`
	SellingPrice      float64  `json:"sellingPrice" binding:"required,gt=0"`
	CostPrice         *float64 `json:"costPrice,omitempty"`
	WholesalePrice    *float64 `json:"wholesalePrice,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Brand       *string        `json:"brand,omitempty"`
	Status      *ProductStatus `json:"status,omitempty"`
	HSNCode     *string        `json:"hsnCode,omitempty"`
}

type UpdateVariantRequest struct {
	Name              *string  `json:"name,omitempty"`
	SellingPrice      *float64 `json:"sellingPrice,omitempty"`
	CostPrice         *float64 `json:"costPrice,omitempty"`
	WholesalePrice    *float64 `json:"wholesalePrice,omitempty"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty"`
}

type AdjustStockRequest struct {
	Delta int     `json:"delta" binding:"required"`
	Notes *string `json:"notes,omitempty"`
}

// Response models

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data,omitempty"`
	Message *string  `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

type VariantResponse struct {
	Success bool            `json:"success"`
	Data    *ProductVariant `json:"data,omitempty"`
	Message *string         `json:"message,omitempty"`
}

type VariantListResponse struct {
	Success    bool             `json:"success"`
	Data       []ProductVariant `json:"data"`
	Pagination *PaginationMeta  `json:"pagination,omitempty"`
}
