package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReturnType categorizes how a unit came back from the marketplace
type ReturnType string

const (
	ReturnTypeRTO            ReturnType = "RTO"             // courier returned before delivery
	ReturnTypeDTO            ReturnType = "DTO"             // delivered, then returned to origin
	ReturnTypeCustomerReturn ReturnType = "CUSTOMER_RETURN" // customer-initiated return
	ReturnTypeExchange       ReturnType = "EXCHANGE"
	ReturnTypeOther          ReturnType = "OTHER"
)

// ParseReturnType normalizes a raw return type value, reporting whether it is valid
func ParseReturnType(s string) (ReturnType, bool) {
	switch ReturnType(s) {
	case ReturnTypeRTO, ReturnTypeDTO, ReturnTypeCustomerReturn, ReturnTypeExchange, ReturnTypeOther:
		return ReturnType(s), true
	}
	return "", false
}

// Restockable reports whether units of this return type go back into inventory.
// RTO, DTO and customer returns come back to the warehouse; exchanges ship a
// replacement out and OTHER covers write-offs.
func (t ReturnType) Restockable() bool {
	switch t {
	case ReturnTypeRTO, ReturnTypeDTO, ReturnTypeCustomerReturn:
		return true
	}
	return false
}

// MarketplaceReturn represents a return imported from a selling platform.
// ExternalReturnID is unique per tenant, same dedup contract as orders.
type MarketplaceReturn struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID         string     `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_returns_tenant_id;index:idx_returns_tenant_platform;uniqueIndex:idx_returns_tenant_external"`
	ExternalReturnID string     `json:"externalReturnId" gorm:"type:varchar(100);not null;uniqueIndex:idx_returns_tenant_external"`
	Platform         Platform   `json:"platform" gorm:"type:varchar(20);not null;index:idx_returns_tenant_platform"`
	ReturnType       ReturnType `json:"returnType" gorm:"type:varchar(20);not null"`

	VariantID uuid.UUID `json:"variantId" gorm:"type:uuid;not null;index"`
	SKU       string    `json:"sku" gorm:"type:varchar(100);not null;index"`

	ReturnDate   time.Time `json:"returnDate" gorm:"not null;index"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	RefundAmount float64   `json:"refundAmount" gorm:"type:decimal(10,2);not null"`
	Reason       string    `json:"reason" gorm:"type:text"`

	// Restocked records whether the returned quantity was added back to
	// inventory when the row was created.
	Restocked bool `json:"restocked" gorm:"default:false"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`

	Variant *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

func (MarketplaceReturn) TableName() string {
	return "marketplace_returns"
}

type CreateReturnRequest struct {
	ExternalReturnID string     `json:"externalReturnId" binding:"required,min=1,max=100"`
	Platform         Platform   `json:"platform" binding:"required"`
	ReturnType       ReturnType `json:"returnType" binding:"required"`
	VariantID        uuid.UUID  `json:"variantId" binding:"required"`
	ReturnDate       time.Time  `json:"returnDate" binding:"required"`
	Quantity         int        `json:"quantity" binding:"required,gt=0"`
	RefundAmount     float64    `json:"refundAmount" binding:"required,gt=0"`
	Reason           string     `json:"reason,omitempty"`
}

type ReturnResponse struct {
	Success bool               `json:"success"`
	Data    *MarketplaceReturn `json:"data,omitempty"`
	Message *string            `json:"message,omitempty"`
}

type ReturnListResponse struct {
	Success    bool                `json:"success"`
	Data       []MarketplaceReturn `json:"data"`
	Pagination *PaginationMeta     `json:"pagination,omitempty"`
}
