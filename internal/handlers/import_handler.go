package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
)

type ImportHandler struct {
	service   *services.ImportService
	publisher *events.Publisher
}

func NewImportHandler(service *services.ImportService, publisher *events.Publisher) *ImportHandler {
	return &ImportHandler{service: service, publisher: publisher}
}

// OrderImportTemplate returns the template for marketplace orders
func OrderImportTemplate() models.ImportTemplate {
	return models.ImportTemplate{
		Entity:  "orders",
		Version: "1.0",
		Columns: []models.ImportTemplateColumn{
			{Name: "external_order_id", Description: "The platform's order identifier", Required: true, Type: "string", Example: "403-1234567-890"},
			{Name: "platform", Description: "Platform (MEESHO, FLIPKART, AMAZON)", Required: true, Type: "string", Example: "MEESHO"},
			{Name: "variant_sku", Description: "Variant SKU", Required: true, Type: "string", Example: "KRT-BLUE-M"},
			{Name: "order_date", Description: "Order date (YYYY-MM-DD)", Required: true, Type: "date", Example: "2026-01-15"},
			{Name: "quantity", Description: "Units ordered", Required: true, Type: "number", Example: "2"},
			{Name: "selling_price", Description: "Unit selling price", Required: true, Type: "number", Example: "349.00"},
			{Name: "status", Description: "Order status (PENDING, SHIPPED, DELIVERED, CANCELLED)", Required: false, Type: "string", Example: "SHIPPED"},
			{Name: "notes", Description: "Free-form notes", Required: false, Type: "string", Example: ""},
		},
		SampleData: []map[string]string{
			{
				"external_order_id": "403-1234567-890",
				"platform":          "MEESHO",
				"variant_sku":       "KRT-BLUE-M",
				"order_date":        "2026-01-15",
				"quantity":          "2",
				"selling_price":     "349.00",
				"status":            "SHIPPED",
				"notes":             "",
			},
			{
				"external_order_id": "OD42998877",
				"platform":          "FLIPKART",
				"variant_sku":       "KRT-RED-L",
				"order_date":        "2026-01-16",
				"quantity":          "1",
				"selling_price":     "399.00",
				"status":            "",
				"notes":             "gift wrap",
			},
		},
	}
}

// ReturnImportTemplate returns the template for marketplace returns
func ReturnImportTemplate() models.ImportTemplate {
	return models.ImportTemplate{
		Entity:  "returns",
		Version: "1.0",
		Columns: []models.ImportTemplateColumn{
			{Name: "external_return_id", Description: "The platform's return identifier", Required: true, Type: "string", Example: "RT-20260120-001"},
			{Name: "platform", Description: "Platform (MEESHO, FLIPKART, AMAZON)", Required: true, Type: "string", Example: "MEESHO"},
			{Name: "variant_sku", Description: "Variant SKU", Required: true, Type: "string", Example: "KRT-BLUE-M"},
			{Name: "return_type", Description: "Return type (RTO, DTO, CUSTOMER_RETURN, EXCHANGE, OTHER)", Required: true, Type: "string", Example: "RTO"},
			{Name: "return_date", Description: "Return date (YYYY-MM-DD)", Required: true, Type: "date", Example: "2026-01-20"},
			{Name: "quantity", Description: "Units returned", Required: true, Type: "number", Example: "1"},
			{Name: "refund_amount", Description: "Amount refunded", Required: true, Type: "number", Example: "349.00"},
			{Name: "return_reason", Description: "Return reason", Required: true, Type: "string", Example: "size issue"},
		},
		SampleData: []map[string]string{
			{
				"external_return_id": "RT-20260120-001",
				"platform":           "MEESHO",
				"variant_sku":        "KRT-BLUE-M",
				"return_type":        "RTO",
				"return_date":        "2026-01-20",
				"quantity":           "1",
				"refund_amount":      "349.00",
				"return_reason":      "undelivered",
			},
		},
	}
}

// GetOrderImportTemplate returns the order import template
// GET /api/v1/orders/import/template
func (h *ImportHandler) GetOrderImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	template := OrderImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template, "orders")
	case "xlsx":
		h.generateXLSXTemplate(c, template, "Orders")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "template": template})
	}
}

// GetReturnImportTemplate returns the return import template
// GET /api/v1/returns/import/template
func (h *ImportHandler) GetReturnImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	template := ReturnImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template, "returns")
	case "xlsx":
		h.generateXLSXTemplate(c, template, "Returns")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "template": template})
	}
}

// ImportOrders imports marketplace orders from a CSV or Excel file
// POST /api/v1/orders/import
func (h *ImportHandler) ImportOrders(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FILE_REQUIRED", Message: "Please upload a CSV or Excel file"},
		})
		return
	}
	defer file.Close()

	result, err := h.service.ImportOrders(tenantID.(string), userID.(string), file, header.Filename)
	if err != nil {
		h.respondImportError(c, err)
		return
	}

	h.publisher.PublishImportCompleted(events.ImportCompletedEvent{
		TenantID:    tenantID.(string),
		Entity:      "orders",
		TotalRows:   result.TotalRows,
		Inserted:    result.Inserted,
		Duplicates:  result.Duplicates,
		StockErrors: result.StockErrors,
		Failed:      result.Failed,
	})

	c.JSON(http.StatusOK, result)
}

// ImportReturns imports marketplace returns from a CSV or Excel file
// POST /api/v1/returns/import
func (h *ImportHandler) ImportReturns(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	userID, _ := c.Get("user_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FILE_REQUIRED", Message: "Please upload a CSV or Excel file"},
		})
		return
	}
	defer file.Close()

	result, err := h.service.ImportReturns(tenantID.(string), userID.(string), file, header.Filename)
	if err != nil {
		h.respondImportError(c, err)
		return
	}

	h.publisher.PublishImportCompleted(events.ImportCompletedEvent{
		TenantID:   tenantID.(string),
		Entity:     "returns",
		TotalRows:  result.TotalRows,
		Inserted:   result.Inserted,
		Duplicates: result.Duplicates,
		Failed:     result.Failed,
	})

	c.JSON(http.StatusOK, result)
}

// respondImportError maps service errors to the envelope: commit failures
// mean the batch rolled back (500); anything else is a structural problem
// with the file (400).
func (h *ImportHandler) respondImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrImportCommit):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "IMPORT_COMMIT_FAILED", Message: "The import could not be committed; no rows were written"},
		})
	case errors.Is(err, services.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "EMPTY_FILE", Message: "The file contains no data rows"},
		})
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "PARSE_ERROR", Message: err.Error()},
		})
	}
}

func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate, entity string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_import_template.csv", entity))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)

	for _, sample := range template.SampleData {
		row := make([]string, len(template.Columns))
		for i, col := range template.Columns {
			row[i] = sample[col.Name]
		}
		writer.Write(row)
	}
}

func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate, sheetName string) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for rowIdx, sample := range template.SampleData {
		for colIdx, col := range template.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, sample[col.Name])
		}
	}

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_import_template.xlsx", strings.ToLower(sheetName)))

	f.Write(c.Writer)
}
