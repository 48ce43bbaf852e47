package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

type OrderHandler struct {
	orders   *repository.OrderRepository
	products *repository.ProductRepository
}

func NewOrderHandler(orders *repository.OrderRepository, products *repository.ProductRepository) *OrderHandler {
	return &OrderHandler{orders: orders, products: products}
}

// ========== Order Handlers ==========

// CreateOrder records a single marketplace order manually
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateOrderRequest
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

	variant, err := h.products.GetVariantByID(tenantID.(string), req.VariantID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	order := &models.MarketplaceOrder{
		ExternalOrderID: req.ExternalOrderID,
		Platform:        req.Platform,
		Status:          models.OrderStatusPending,
		VariantID:       variant.ID,
		SKU:             variant.SKU,
		OrderDate:       req.OrderDate,
		Quantity:        req.Quantity,
		SellingPrice:    req.SellingPrice,
		Total:           req.SellingPrice * float64(req.Quantity),
		Notes:           req.Notes,
		CreatedBy:       stringPtr(userID.(string)),
	}

	if err := h.orders.CreateOrder(tenantID.(string), order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "DUPLICATE_ORDER", Message: "An order with this external ID already exists"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create order"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.OrderResponse{
		Success: true,
		Data:    order,
		Message: stringPtr("Order created successfully"),
	})
}

// GetOrder retrieves an order by ID
func (h *OrderHandler) GetOrder(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid order ID"},
		})
		return
	}

	order, err := h.orders.GetOrderByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Order not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Data: order})
}

// ListOrders lists orders with platform/status/date filters
func (h *OrderHandler) ListOrders(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	filter := repository.OrderFilter{}
	if platformStr := c.Query("platform"); platformStr != "" {
		platform, ok := models.ParsePlatform(platformStr)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_PLATFORM", Message: "Unknown platform"},
			})
			return
		}
		filter.Platform = &platform
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.OrderStatus(statusStr)
		filter.Status = &status
	}
	filter.From = parseDateQuery(c, "from")
	filter.To = parseDateQuery(c, "to")

	page, limit := parsePagination(c)
	orders, total, err := h.orders.ListOrders(tenantID.(string), filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve orders"},
		})
		return
	}

	response := models.OrderListResponse{Success: true, Data: orders}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// UpdateOrderStatus changes an order's fulfilment status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid order ID"},
		})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_STATUS", Message: "Unknown order status"},
		})
		return
	}

	if err := h.orders.UpdateOrderStatus(tenantID.(string), id, req.Status); err != nil {
		status, resp := notFoundOrInternal(err, "Order")
		c.JSON(status, resp)
		return
	}

	order, err := h.orders.GetOrderByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Order not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{
		Success: true,
		Data:    order,
		Message: stringPtr("Order status updated"),
	})
}

// DeleteOrder soft-deletes an order
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid order ID"},
		})
		return
	}

	if err := h.orders.DeleteOrder(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Order")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Order deleted successfully"),
	})
}

// ========== Return Handlers ==========

// CreateReturn records a single marketplace return manually. Restockable
// return types add the quantity back to inventory in the same transaction.
func (h *OrderHandler) CreateReturn(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	var req models.CreateReturnRequest
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
	if _, ok := models.ParseReturnType(string(req.ReturnType)); !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_RETURN_TYPE", Message: "Unknown return type"},
		})
		return
	}

	variant, err := h.products.GetVariantByID(tenantID.(string), req.VariantID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Variant not found"},
		})
		return
	}

	ret := &models.MarketplaceReturn{
		ExternalReturnID: req.ExternalReturnID,
		Platform:         req.Platform,
		ReturnType:       req.ReturnType,
		VariantID:        variant.ID,
		SKU:              variant.SKU,
		ReturnDate:       req.ReturnDate,
		Quantity:         req.Quantity,
		RefundAmount:     req.RefundAmount,
		Reason:           req.Reason,
		CreatedBy:        stringPtr(userID.(string)),
	}

	if err := h.orders.CreateReturn(tenantID.(string), ret); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "DUPLICATE_RETURN", Message: "A return with this external ID already exists"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CREATION_FAILED", Message: "Failed to create return"},
		})
		return
	}

	c.JSON(http.StatusCreated, models.ReturnResponse{
		Success: true,
		Data:    ret,
		Message: stringPtr("Return created successfully"),
	})
}

// GetReturn retrieves a return by ID
func (h *OrderHandler) GetReturn(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid return ID"},
		})
		return
	}

	ret, err := h.orders.GetReturnByID(tenantID.(string), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Return not found"},
		})
		return
	}

	c.JSON(http.StatusOK, models.ReturnResponse{Success: true, Data: ret})
}

// ListReturns lists returns with platform/type/date filters
func (h *OrderHandler) ListReturns(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	filter := repository.ReturnFilter{}
	if platformStr := c.Query("platform"); platformStr != "" {
		platform, ok := models.ParsePlatform(platformStr)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_PLATFORM", Message: "Unknown platform"},
			})
			return
		}
		filter.Platform = &platform
	}
	if typeStr := c.Query("returnType"); typeStr != "" {
		returnType, ok := models.ParseReturnType(typeStr)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_RETURN_TYPE", Message: "Unknown return type"},
			})
			return
		}
		filter.ReturnType = &returnType
	}
	filter.From = parseDateQuery(c, "from")
	filter.To = parseDateQuery(c, "to")

	page, limit := parsePagination(c)
	returns, total, err := h.orders.ListReturns(tenantID.(string), filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to retrieve returns"},
		})
		return
	}

	response := models.ReturnListResponse{Success: true, Data: returns}
	response.Pagination = paginationMeta(page, limit, total)
	c.JSON(http.StatusOK, response)
}

// DeleteReturn soft-deletes a return
func (h *OrderHandler) DeleteReturn(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid return ID"},
		})
		return
	}

	if err := h.orders.DeleteReturn(tenantID.(string), id); err != nil {
		status, resp := notFoundOrInternal(err, "Return")
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Return deleted successfully"),
	})
}

// parseDateQuery reads a YYYY-MM-DD query parameter, nil when absent or bad
func parseDateQuery(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
