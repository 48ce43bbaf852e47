package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
)

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// ========== Vendor Operations ==========

func (r *FinanceRepository) CreateVendor(tenantID string, vendor *models.Vendor) error {
	vendor.TenantID = tenantID
	return r.db.Create(vendor).Error
}

func (r *FinanceRepository) GetVendorByID(tenantID string, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Purchases").
		Preload("Payments").
		First(&vendor).Error
	return &vendor, err
}

func (r *FinanceRepository) ListVendors(tenantID string, page, limit int) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if err := query.Model(&models.Vendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Order("name ASC").Find(&vendors).Error
	return vendors, total, err
}

func (r *FinanceRepository) UpdateVendor(tenantID string, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.Vendor{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

func (r *FinanceRepository) DeleteVendor(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Vendor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FinanceRepository) CreatePurchase(tenantID string, purchase *models.VendorPurchase) error {
	purchase.TenantID = tenantID
	return r.db.Create(purchase).Error
}

func (r *FinanceRepository) ListPurchases(tenantID string, vendorID uuid.UUID) ([]models.VendorPurchase, error) {
	var purchases []models.VendorPurchase
	err := r.db.Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *FinanceRepository) CreatePayment(tenantID string, payment *models.VendorPayment) error {
	payment.TenantID = tenantID
	return r.db.Create(payment).Error
}

func (r *FinanceRepository) ListPayments(tenantID string, vendorID uuid.UUID) ([]models.VendorPayment, error) {
	var payments []models.VendorPayment
	err := r.db.Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// GetVendorOutstanding computes purchases minus payments for one vendor
func (r *FinanceRepository) GetVendorOutstanding(tenantID string, vendorID uuid.UUID) (*models.VendorOutstanding, error) {
	var vendor models.Vendor
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, vendorID).First(&vendor).Error; err != nil {
		return nil, err
	}

	out := models.VendorOutstanding{VendorID: vendorID, VendorName: vendor.Name}

	err := r.db.Model(&models.VendorPurchase{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.TotalPurchases).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.VendorPayment{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.TotalPayments).Error
	if err != nil {
		return nil, err
	}

	out.Outstanding = out.TotalPurchases - out.TotalPayments
	return &out, nil
}

// ========== Payout Operations ==========

func (r *FinanceRepository) CreatePayout(tenantID string, payout *models.PlatformPayout) error {
	payout.TenantID = tenantID
	payout.NetAmount = payout.GrossAmount - payout.Fees
	return r.db.Create(payout).Error
}

func (r *FinanceRepository) GetPayoutByID(tenantID string, id uuid.UUID) (*models.PlatformPayout, error) {
	var payout models.PlatformPayout
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&payout).Error
	return &payout, err
}

func (r *FinanceRepository) ListPayouts(tenantID string, platform *models.Platform, from, to *time.Time, page, limit int) ([]models.PlatformPayout, int64, error) {
	var payouts []models.PlatformPayout
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if platform != nil {
		query = query.Where("platform = ?", *platform)
	}
	if from != nil {
		query = query.Where("payout_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("payout_date <= ?", *to)
	}

	if err := query.Model(&models.PlatformPayout{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Order("payout_date DESC").Find(&payouts).Error
	return payouts, total, err
}

func (r *FinanceRepository) DeletePayout(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.PlatformPayout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========== Expense Operations ==========

func (r *FinanceRepository) CreateExpense(tenantID string, expense *models.Expense) error {
	expense.TenantID = tenantID
	return r.db.Create(expense).Error
}

func (r *FinanceRepository) ListExpenses(tenantID string, category *models.ExpenseCategory, from, to *time.Time, page, limit int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64
	query := r.db.Where("tenant_id = ?", tenantID)

	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if from != nil {
		query = query.Where("expense_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("expense_date <= ?", *to)
	}

	if err := query.Model(&models.Expense{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	err := query.Order("expense_date DESC").Find(&expenses).Error
	return expenses, total, err
}

func (r *FinanceRepository) DeleteExpense(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========== Wholesale Tier Operations ==========

func (r *FinanceRepository) CreateTier(tenantID string, tier *models.WholesaleTier) error {
	tier.TenantID = tenantID
	return r.db.Create(tier).Error
}

func (r *FinanceRepository) ListTiers(tenantID string, variantID uuid.UUID) ([]models.WholesaleTier, error) {
	var tiers []models.WholesaleTier
	err := r.db.Where("tenant_id = ? AND variant_id = ?", tenantID, variantID).
		Order("min_quantity ASC").
		Find(&tiers).Error
	return tiers, err
}

func (r *FinanceRepository) DeleteTier(tenantID string, id uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.WholesaleTier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
