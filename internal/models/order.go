package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfilment status of a marketplace order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// MarketplaceOrder represents an order imported from a selling platform.
// ExternalOrderID is the platform's own identifier and is unique per tenant,
// which is what blocks the same order being imported twice.
type MarketplaceOrder struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID        string      `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_orders_tenant_id;index:idx_orders_tenant_status;index:idx_orders_tenant_platform;uniqueIndex:idx_orders_tenant_external"`
	ExternalOrderID string      `json:"externalOrderId" gorm:"type:varchar(100);not null;uniqueIndex:idx_orders_tenant_external"`
	Platform        Platform    `json:"platform" gorm:"type:varchar(20);not null;index:idx_orders_tenant_platform"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index:idx_orders_tenant_status"`

	VariantID uuid.UUID `json:"variantId" gorm:"type:uuid;not null;index"`
	SKU       string    `json:"sku" gorm:"type:varchar(100);not null;index"`

	OrderDate    time.Time `json:"orderDate" gorm:"not null;index"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	SellingPrice float64   `json:"sellingPrice" gorm:"type:decimal(10,2);not null"`
	Total        float64   `json:"total" gorm:"type:decimal(10,2);not null"`

	Notes *string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`

	Variant *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

func (MarketplaceOrder) TableName() string {
	return "marketplace_orders"
}

type CreateOrderRequest struct {
	ExternalOrderID string    `json:"externalOrderId" binding:"required,min=1,max=100"`
	Platform        Platform  `json:"platform" binding:"required"`
	VariantID       uuid.UUID `json:"variantId" binding:"required"`
	OrderDate       time.Time `json:"orderDate" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
	SellingPrice    float64   `json:"sellingPrice" binding:"required,gt=0"`
	Notes           *string   `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type OrderResponse struct {
	Success bool              `json:"success"`
	Data    *MarketplaceOrder `json:"data,omitempty"`
	Message *string           `json:"message,omitempty"`
}

type OrderListResponse struct {
	Success    bool               `json:"success"`
	Data       []MarketplaceOrder `json:"data"`
	Pagination *PaginationMeta    `json:"pagination,omitempty"`
}
