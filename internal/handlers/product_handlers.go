package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

type ProductHandler struct {
	repo      *repository.ProductRepository
	publisher *events.Publisher
}

func NewProductHandler(repo *repository.ProductRepository, publisher *events.Publisher) *ProductHandler {
	return &ProductHandler{repo: repo, publisher: publisher}
}

// ========== Product Handlers ==========

// CreateProduct creates a new product, optionally with variants
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		HSNCode:     req.HSNCode,
		Status:      models.ProductStatusActive,
		CreatedBy:   stringPtr(userID.(string)),
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	for _, v := range req.Variants {
		variant := models.ProductVariant{
			SKU:               v.SKU,
			Name:              v.Name,
			SellingPrice:      v.SellingPrice,
			CostPrice:         v.CostPrice,
			WholesalePrice:    v.WholesalePrice,
			LowStockThreshold: v.LowStockThreshold,
		}
		if v.Quantity != nil {
			variant.Quantity = *v.Quantity
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := h.repo.CreateProduct(tenantID.(string), product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create product"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.ProductResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product created successfully"),
	})
}

// GetProduct retrieves a product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid product ID"},
		})
		return
	}

	product, err := h.repo.GetProductByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// ListProducts lists products with optional category filter and name search
func (h *ProductHandler) ListProducts(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var category *string
	if categoryStr := c.Query("category"); categoryStr != "" {
		category = &categoryStr
	}
	search := c.Query("search")
	page, limit := parsePagination(c)

	products, total, err := h.repo.ListProducts(tenantID.(string), category, search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve products"},
		})
		return
	}

	response := models.ProductListResponse{Success: true, Data: products}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// UpdateProduct updates a product's mutable fields
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid product ID"},
		})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	updates := map[string]interface{}{"updated_by": userID.(string)}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.HSNCode != nil {
		updates["hsn_code"] = *req.HSNCode
	}

	if err := h.repo.UpdateProduct(tenantID.(string), id, updates); err != nil {
		status, resp := notFoundOrInternal(err, "Product")
		c.JSON(status, resp)
		return
	}

	product, err := h.repo.GetProductByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    product,
		Message: stringPtr("Product updated successfully"),
	})
}

// DeleteProduct soft-deletes a product and its variants
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid product ID"},
		})
		return
	}

	if err := h.repo.DeleteProduct(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Product")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Product deleted successfully"),
	})
}

// ========== Variant Handlers ==========

// CreateVariant adds a variant to an existing product
func (h *ProductHandler) CreateVariant(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid product ID"},
		})
		return
	}

	var req models.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	variant := &models.ProductVariant{
		ProductID:         productID,
		SKU:               req.SKU,
		Name:              req.Name,
		SellingPrice:      req.SellingPrice,
		CostPrice:         req.CostPrice,
		WholesalePrice:    req.WholesalePrice,
		LowStockThreshold: req.LowStockThreshold,
	}
	if req.Quantity != nil {
		variant.Quantity = *req.Quantity
	}

	if err := h.repo.CreateVariant(tenantID.(string), variant); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create variant"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.VariantResponse{
		Success: true,
		Data:    variant,
		Message: stringPtr("Variant created successfully"),
	})
}

// GetVariant retrieves a variant by ID
func (h *ProductHandler) GetVariant(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	variant, err := h.repo.GetVariantByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.VariantResponse{Success: true, Data: variant})
}

// UpdateVariant updates a variant's mutable fields (not stock)
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	var req models.UpdateVariantRequest
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
	if req.SellingPrice != nil {
		updates["selling_price"] = *req.SellingPrice
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.WholesalePrice != nil {
		updates["wholesale_price"] = *req.WholesalePrice
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "No fields to update"},
		})
		return
	}

	if err := h.repo.UpdateVariant(tenantID.(string), id, updates); err != nil {
		status, resp := notFoundOrInternal(err, "Variant")
		c.JSON(status, resp)
		return
	}

	variant, err := h.repo.GetVariantByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.VariantResponse{
		Success: true,
		Data:    variant,
		Message: stringPtr("Variant updated successfully"),
	})
}

// DeleteVariant soft-deletes a variant
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	if err := h.repo.DeleteVariant(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Variant")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Variant deleted successfully"),
	})
}

// ========== Stock Handlers ==========

// AdjustStock applies a manual stock delta with a movement audit row
// POST /api/v1/variants/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	variant, err := h.repo.AdjustStock(tenantID.(string), id, req.Delta, userID.(string), req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INSUFFICIENT_STOCK", Message: "Adjustment would drive stock negative"},
			})
			return
		}
		status, resp := notFoundOrInternal(err, "Variant")
		c.JSON(status, resp)
		return
	}

	if variant.LowStockThreshold != nil && variant.Quantity <= *variant.LowStockThreshold {
		h.publisher.PublishLowStock(events.LowStockEvent{
			TenantID:     tenantID.(string),
			VariantID:    variant.ID.String(),
			SKU:          variant.SKU,
			Name:         variant.Name,
			CurrentStock: variant.Quantity,
			Threshold:    *variant.LowStockThreshold,
		})
	}

	c.JSON(http.StatusOK, models.VariantResponse{
		Success: true,
		Data:    variant,
		Message: stringPtr("Stock adjusted successfully"),
	})
}

// ListLowStock lists variants at or below their low stock threshold
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	variants, err := h.repo.ListLowStock(tenantID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve low stock variants"},
		})
		return
	}

	c.JSON(http.StatusOK, models.VariantListResponse{Success: true, Data: variants})
}

// ListStockMovements lists the movement audit trail for a variant
func (h *ProductHandler) ListStockMovements(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid variant ID"},
		})
		return
	}

	page, limit := parsePagination(c)
	movements, total, err := h.repo.ListStockMovements(tenantID.(string), id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve stock movements"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       movements,
		"pagination": paginationMeta(page, limit, total),
	})
}

// ========== Shared helpers ==========

func stringPtr(s string) *string {
	return &s
}

func parsePagination(c *gin.Context) (int, int) {
	page := 0
	limit := 0
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) *models.PaginationMeta {
	if page <= 0 || limit <= 0 {
		return nil
	}
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func notFoundOrInternal(err error, entity string) (int, models.ErrorResponse) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: entity + " not found"},
		}
	}
	return http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: "OPERATION_FAILED", Message: "Failed to update " + entity},
	}
}
