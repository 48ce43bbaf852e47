package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlatformPayout represents a settlement received from a marketplace for a
// payout period. Breakdown holds the platform's fee line items as reported.
type PlatformPayout struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string    `json:"tenantId" gorm:"type:varchar(255);not null;index;index:idx_payouts_tenant_platform"`
	Platform Platform  `json:"platform" gorm:"type:varchar(20);not null;index:idx_payouts_tenant_platform"`

	PeriodStart time.Time `json:"periodStart" gorm:"not null;index"`
	PeriodEnd   time.Time `json:"periodEnd" gorm:"not null"`
	PayoutDate  time.Time `json:"payoutDate" gorm:"not null;index"`

	GrossAmount float64        `json:"grossAmount" gorm:"type:decimal(12,2);not null"`
	Fees        float64        `json:"fees" gorm:"type:decimal(12,2);not null;default:0"`
	NetAmount   float64        `json:"netAmount" gorm:"type:decimal(12,2);not null"`
	Breakdown   datatypes.JSON `json:"breakdown,omitempty" gorm:"type:jsonb"`

	Reference *string `json:"reference,omitempty" gorm:"type:varchar(255)"`
	Notes     *string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// ExpenseCategory buckets business expenses for reporting
type ExpenseCategory string

const (
	ExpenseCategoryPackaging  ExpenseCategory = "PACKAGING"
	ExpenseCategoryShipping   ExpenseCategory = "SHIPPING"
	ExpenseCategoryAds        ExpenseCategory = "ADS"
	ExpenseCategorySalary     ExpenseCategory = "SALARY"
	ExpenseCategoryRent       ExpenseCategory = "RENT"
	ExpenseCategoryUtilities  ExpenseCategory = "UTILITIES"
	ExpenseCategoryOther      ExpenseCategory = "OTHER"
)

// Expense represents a business expense entry
type Expense struct {
	ID       uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string          `json:"tenantId" gorm:"type:varchar(255);not null;index;index:idx_expenses_tenant_category"`
	Category ExpenseCategory `json:"category" gorm:"type:varchar(30);not null;default:'OTHER';index:idx_expenses_tenant_category"`

	ExpenseDate time.Time `json:"expenseDate" gorm:"not null;index"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`
}

// WholesaleTier defines a quantity-break price for a variant. Resolution
// picks the tier with the highest MinQuantity not exceeding the requested
// quantity; below the lowest tier the variant's selling price applies.
type WholesaleTier struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string    `json:"tenantId" gorm:"type:varchar(255);not null;index"`
	VariantID uuid.UUID `json:"variantId" gorm:"type:uuid;not null;index;uniqueIndex:idx_tiers_variant_minqty"`

	MinQuantity int     `json:"minQuantity" gorm:"not null;uniqueIndex:idx_tiers_variant_minqty"`
	UnitPrice   float64 `json:"unitPrice" gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

func (PlatformPayout) TableName() string {
	return "platform_payouts"
}

func (Expense) TableName() string {
	return "expenses"
}

func (WholesaleTier) TableName() string {
	return "wholesale_tiers"
}

type CreatePayoutRequest struct {
	Platform    Platform       `json:"platform" binding:"required"`
	PeriodStart time.Time      `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time      `json:"periodEnd" binding:"required"`
	PayoutDate  time.Time      `json:"payoutDate" binding:"required"`
	GrossAmount float64        `json:"grossAmount" binding:"required,gt=0"`
	Fees        float64        `json:"fees"`
	Breakdown   datatypes.JSON `json:"breakdown,omitempty"`
	Reference   *string        `json:"reference,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

type CreateExpenseRequest struct {
	Category    *ExpenseCategory `json:"category,omitempty"`
	ExpenseDate time.Time        `json:"expenseDate" binding:"required"`
	Amount      float64          `json:"amount" binding:"required,gt=0"`
	Description *string          `json:"description,omitempty"`
}

type CreateWholesaleTierRequest struct {
	MinQuantity int     `json:"minQuantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
}

// PriceQuote is the resolved unit price for a variant at a given quantity
type PriceQuote struct {
	VariantID   uuid.UUID  `json:"variantId"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unitPrice"`
	TotalPrice  float64    `json:"totalPrice"`
	TierApplied *uuid.UUID `json:"tierApplied,omitempty"`
}

type PayoutResponse struct {
	Success bool            `json:"success"`
	Data    *PlatformPayout `json:"data,omitempty"`
	Message *string         `json:"message,omitempty"`
}

type PayoutListResponse struct {
	Success    bool             `json:"success"`
	Data       []PlatformPayout `json:"data"`
	Pagination *PaginationMeta  `json:"pagination,omitempty"`
}

type ExpenseResponse struct {
	Success bool     `json:"success"`
	Data    *Expense `json:"data,omitempty"`
	Message *string  `json:"message,omitempty"`
}

type ExpenseListResponse struct {
	Success    bool            `json:"success"`
	Data       []Expense       `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}
