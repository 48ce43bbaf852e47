package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
)

type FinanceHandler struct {
	finance  *repository.FinanceRepository
	products *repository.ProductRepository
}

func NewFinanceHandler(finance *repository.FinanceRepository, products *repository.ProductRepository) *FinanceHandler {
	return &FinanceHandler{finance: finance, products: products}
}

// ========== Vendor Handlers ==========

// CreateVendor creates a new vendor
func (h *FinanceHandler) CreateVendor(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	vendor := &models.Vendor{
		Name:        req.Name,
		Status:      models.VendorStatusActive,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		GSTIN:       req.GSTIN,
		Notes:       req.Notes,
		CreatedBy:   stringPtr(userID.(string)),
	}

	if err := h.finance.CreateVendor(tenantID.(string), vendor); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create vendor"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.VendorResponse{
		Success: true,
		Data:    vendor,
		Message: stringPtr("Vendor created successfully"),
	})
}

// GetVendor retrieves a vendor by ID
func (h *FinanceHandler) GetVendor(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	vendor, err := h.finance.GetVendorByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Vendor not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.VendorResponse{Success: true, Data: vendor})
}

// ListVendors lists vendors
func (h *FinanceHandler) ListVendors(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	page, limit := parsePagination(c)
	vendors, total, err := h.finance.ListVendors(tenantID.(string), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve vendors"},
		})
		return
	}

	response := models.VendorListResponse{Success: true, Data: vendors}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// UpdateVendor updates vendor details
func (h *FinanceHandler) UpdateVendor(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	var req models.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.GSTIN != nil {
		updates["gstin"] = *req.GSTIN
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "No fields to update"},
		})
		return
	}

	if err := h.finance.UpdateVendor(tenantID.(string), id, updates); err != nil {
		status, resp := notFoundOrInternal(err, "Vendor")
		c.JSON(status, resp)
		return
	}

	vendor, err := h.finance.GetVendorByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Vendor not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.VendorResponse{
		Success: true,
		Data:    vendor,
		Message: stringPtr("Vendor updated successfully"),
	})
}

// DeleteVendor soft-deletes a vendor
func (h *FinanceHandler) DeleteVendor(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	if err := h.finance.DeleteVendor(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Vendor")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Vendor deleted successfully"),
	})
}

// CreatePurchase records a purchase bill against a vendor
// POST /api/v1/vendors/:id/purchases
func (h *FinanceHandler) CreatePurchase(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	var req models.CreateVendorPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if _, err := h.finance.GetVendorByID(tenantID.(string), vendorID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Vendor not found"},
		})
		return
	}

	purchase := &models.VendorPurchase{
		VendorID:     vendorID,
		BillNumber:   req.BillNumber,
		PurchaseDate: req.PurchaseDate,
		Amount:       req.Amount,
		Notes:        req.Notes,
	}

	if err := h.finance.CreatePurchase(tenantID.(string), purchase); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to record purchase"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    purchase,
		Message: stringPtr("Purchase recorded successfully"),
	})
}

// ListPurchases lists the purchase bills for a vendor
func (h *FinanceHandler) ListPurchases(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	purchases, err := h.finance.ListPurchases(tenantID.(string), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve purchases"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: purchases})
}

// CreatePayment records a payment made to a vendor
// POST /api/v1/vendors/:id/payments
func (h *FinanceHandler) CreatePayment(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	var req models.CreateVendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if _, err := h.finance.GetVendorByID(tenantID.(string), vendorID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Vendor not found"},
		})
		return
	}

	payment := &models.VendorPayment{
		VendorID:    vendorID,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
		Mode:        models.PaymentModeUPI,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	if req.Mode != nil {
		payment.Mode = *req.Mode
	}

	if err := h.finance.CreatePayment(tenantID.(string), payment); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to record payment"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    payment,
		Message: stringPtr("Payment recorded successfully"),
	})
}

// ListPayments lists the payments made to a vendor
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	payments, err := h.finance.ListPayments(tenantID.(string), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve payments"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: payments})
}

// GetVendorOutstanding returns the vendor's balance position
// GET /api/v1/vendors/:id/outstanding
func (h *FinanceHandler) GetVendorOutstanding(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vendor ID"},
		})
		return
	}

	outstanding, err := h.finance.GetVendorOutstanding(tenantID.(string), vendorID)
	if err != nil {
		status, resp := notFoundOrInternal(err, "Vendor")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: outstanding})
}

// ========== Payout Handlers ==========

// CreatePayout records a platform settlement
func (h *FinanceHandler) CreatePayout(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req models.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if _, ok := models.ParsePlatform(string(req.Platform)); !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_PLATFORM", Message: "Unknown platform"},
		})
		return
	}

	payout := &models.PlatformPayout{
		Platform:    req.Platform,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		PayoutDate:  req.PayoutDate,
		GrossAmount: req.GrossAmount,
		Fees:        req.Fees,
		Breakdown:   req.Breakdown,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}

	if err := h.finance.CreatePayout(tenantID.(string), payout); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to record payout"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.PayoutResponse{
		Success: true,
		Data:    payout,
		Message: stringPtr("Payout recorded successfully"),
	})
}

// GetPayout retrieves a payout by ID
func (h *FinanceHandler) GetPayout(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid payout ID"},
		})
		return
	}

	payout, err := h.finance.GetPayoutByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Payout not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.PayoutResponse{Success: true, Data: payout})
}

// ListPayouts lists payouts with platform/date filters
func (h *FinanceHandler) ListPayouts(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var platform *models.Platform
	if platformStr := c.Query("platform"); platformStr != "" {
		p, ok := models.ParsePlatform(platformStr)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_PLATFORM", Message: "Unknown platform"},
			})
			return
		}
		platform = &p
	}
	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")

	page, limit := parsePagination(c)
	payouts, total, err := h.finance.ListPayouts(tenantID.(string), platform, from, to, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve payouts"},
		})
		return
	}

	response := models.PayoutListResponse{Success: true, Data: payouts}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// DeletePayout soft-deletes a payout record
func (h *FinanceHandler) DeletePayout(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid payout ID"},
		})
		return
	}

	if err := h.finance.DeletePayout(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Payout")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Payout deleted successfully"),
	})
}

// ========== Expense Handlers ==========

// CreateExpense records a business expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	expense := &models.Expense{
		Category:    models.ExpenseCategoryOther,
		ExpenseDate: req.ExpenseDate,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   stringPtr(userID.(string)),
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}

	if err := h.finance.CreateExpense(tenantID.(string), expense); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to record expense"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.ExpenseResponse{
		Success: true,
		Data:    expense,
		Message: stringPtr("Expense recorded successfully"),
	})
}

// ListExpenses lists expenses with category/date filters
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var category *models.ExpenseCategory
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := models.ExpenseCategory(categoryStr)
		category = &cat
	}
	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")

	page, limit := parsePagination(c)
	expenses, total, err := h.finance.ListExpenses(tenantID.(string), category, from, to, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve expenses"},
		})
		return
	}

	response := models.ExpenseListResponse{Success: true, Data: expenses}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// DeleteExpense soft-deletes an expense
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid expense ID"},
		})
		return
	}

	if err := h.finance.DeleteExpense(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Expense")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Expense deleted successfully"),
	})
}

// ========== Wholesale Tier Handlers ==========

// CreateTier adds a quantity-break price to a variant
// POST /api/v1/variants/:id/tiers
func (h *FinanceHandler) CreateTier(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	var req models.CreateWholesaleTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if _, err := h.products.GetVariantByID(tenantID.(string), variantID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	tier := &models.WholesaleTier{
		VariantID:   variantID,
		MinQuantity: req.MinQuantity,
		UnitPrice:   req.UnitPrice,
	}

	if err := h.finance.CreateTier(tenantID.(string), tier); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create tier"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    tier,
		Message: stringPtr("Wholesale tier created successfully"),
	})
}

// ListTiers lists the quantity breaks for a variant
func (h *FinanceHandler) ListTiers(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	tiers, err := h.finance.ListTiers(tenantID.(string), variantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve tiers"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: tiers})
}

// DeleteTier removes a quantity break
func (h *FinanceHandler) DeleteTier(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid tier ID"},
		})
		return
	}

	if err := h.finance.DeleteTier(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Tier")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Wholesale tier deleted successfully"),
	})
}

// GetPriceQuote resolves the unit price for a variant at a quantity
// GET /api/v1/variants/:id/quote?quantity=N
func (h *FinanceHandler) GetPriceQuote(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_QUANTITY", Message: "Quantity must be a positive integer"},
		})
		return
	}

	variant, err := h.products.GetVariantByID(tenantID.(string), variantID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	tiers, err := h.finance.ListTiers(tenantID.(string), variantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve tiers"},
		})
		return
	}

	quote := services.QuoteVariantPrice(variant, tiers, quantity)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: quote})
}
