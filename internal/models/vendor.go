package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// Vendor represents a wholesale supplier the operation buys stock from
type Vendor struct {
	ID       uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string       `json:"tenantId" gorm:"type:varchar(255);not null;index"`
	Name     string       `json:"name" gorm:"type:varchar(255);not null"`
	Status   VendorStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	ContactName *string `json:"contactName,omitempty" gorm:"type:varchar(255)"`
	Phone       *string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Email       *string `json:"email,omitempty" gorm:"type:varchar(255)"`
	Address     *string `json:"address,omitempty" gorm:"type:text"`
	GSTIN       *string `json:"gstin,omitempty" gorm:"type:varchar(15)"`
	Notes       *string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy *string         `json:"createdBy,omitempty"`

	Purchases []VendorPurchase `json:"purchases,omitempty" gorm:"foreignKey:VendorID"`
	Payments  []VendorPayment  `json:"payments,omitempty" gorm:"foreignKey:VendorID"`
}

// VendorPurchase represents a purchase bill raised by a vendor
type VendorPurchase struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string    `json:"tenantId" gorm:"type:varchar(255);not null;index"`
	VendorID uuid.UUID `json:"vendorId" gorm:"type:uuid;not null;index"`

	BillNumber   *string   `json:"billNumber,omitempty" gorm:"type:varchar(100)"`
	PurchaseDate time.Time `json:"purchaseDate" gorm:"not null;index"`
	Amount       float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Notes        *string   `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// PaymentMode represents how a vendor payment was made
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeCheque       PaymentMode = "CHEQUE"
)

// VendorPayment represents money paid out against a vendor's bills
type VendorPayment struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string    `json:"tenantId" gorm:"type:varchar(255);not null;index"`
	VendorID uuid.UUID `json:"vendorId" gorm:"type:uuid;not null;index"`

	PaymentDate time.Time   `json:"paymentDate" gorm:"not null;index"`
	Amount      float64     `json:"amount" gorm:"type:decimal(12,2);not null"`
	Mode        PaymentMode `json:"mode" gorm:"type:varchar(20);not null;default:'UPI'"`
	Reference   *string     `json:"reference,omitempty" gorm:"type:varchar(255)"`
	Notes       *string     `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

func (Vendor) TableName() string {
	return "vendors"
}

func (VendorPurchase) TableName() string {
	return "vendor_purchases"
}

func (VendorPayment) TableName() string {
	return "vendor_payments"
}

// VendorOutstanding summarizes a vendor's balance position
type VendorOutstanding struct {
	VendorID       uuid.UUID `json:"vendorId"`
	VendorName     string    `json:"vendorName"`
	TotalPurchases float64   `json:"totalPurchases"`
	TotalPayments  float64   `json:"totalPayments"`
	Outstanding    float64   `json:"outstanding"`
}

type CreateVendorRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	ContactName *string `json:"contactName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	GSTIN       *string `json:"gstin,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateVendorRequest struct {
	Name        *string       `json:"name,omitempty"`
	Status      *VendorStatus `json:"status,omitempty"`
	ContactName *string       `json:"contactName,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Address     *string       `json:"address,omitempty"`
	GSTIN       *string       `json:"gstin,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
}

type CreateVendorPurchaseRequest struct {
	BillNumber   *string   `json:"billNumber,omitempty"`
	PurchaseDate time.Time `json:"purchaseDate" binding:"required"`
	Amount       float64   `json:"amount" binding:"required,gt=0"`
	Notes        *string   `json:"notes,omitempty"`
}

type CreateVendorPaymentRequest struct {
	PaymentDate time.Time    `json:"paymentDate" binding:"required"`
	Amount      float64      `json:"amount" binding:"required,gt=0"`
	Mode        *PaymentMode `json:"mode,omitempty"`
	Reference   *string      `json:"reference,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
}

type VendorResponse struct {
	Success bool    `json:"success"`
	Data    *Vendor `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

type VendorListResponse struct {
	Success    bool            `json:"success"`
	Data       []Vendor        `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}
