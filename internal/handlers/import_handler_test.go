package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
)

// MockImportRepository is a mock implementation of ImportRepositoryInterface
type MockImportRepository struct {
	mock.Mock
}

var _ repository.ImportRepositoryInterface = (*MockImportRepository)(nil)

func (m *MockImportRepository) FindVariantsBySKUs(tenantID string, skus []string) ([]models.ProductVariant, error) {
	args := m.Called(tenantID, skus)
	return args.Get(0).([]models.ProductVariant), args.Error(1)
}

func (m *MockImportRepository) FindExistingOrderIDs(tenantID string, externalIDs []string) ([]string, error) {
	args := m.Called(tenantID, externalIDs)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImportRepository) FindExistingReturnIDs(tenantID string, externalIDs []string) ([]string, error) {
	args := m.Called(tenantID, externalIDs)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImportRepository) CommitOrderImport(tenantID string, orders []*models.MarketplaceOrder, stockDeltas map[uuid.UUID]int) error {
	args := m.Called(tenantID, orders, stockDeltas)
	return args.Error(0)
}

func (m *MockImportRepository) CommitReturnImport(tenantID string, returns []*models.MarketplaceReturn) error {
	args := m.Called(tenantID, returns)
	return args.Error(0)
}

func setupImportRouter(repo repository.ImportRepositoryInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewImportHandler(services.NewImportService(repo, logger), nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", "tenant-123")
		c.Set("user_id", "user-456")
		c.Next()
	})
	router.POST("/orders/import", handler.ImportOrders)
	router.POST("/returns/import", handler.ImportReturns)
	router.GET("/orders/import/template", handler.GetOrderImportTemplate)
	return router
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportOrdersEndpoint_HappyPath(t *testing.T) {
	mockRepo := new(MockImportRepository)
	variantID := uuid.New()
	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{{ID: variantID, SKU: "KRT-BLUE-M", Quantity: 50}}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	csv := "external_order_id,platform,variant_sku,order_date,quantity,selling_price\n" +
		"ORD-1,MEESHO,KRT-BLUE-M,2026-01-10,2,499.00\n" +
		"ORD-2,FLIPKART,KRT-BLUE-M,2026-01-11,1,525.00\n"
	body, contentType := multipartBody(t, "orders.csv", csv)

	router := setupImportRouter(mockRepo)
	req := httptest.NewRequest(http.MethodPost, "/orders/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ImportResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.Errors)
	mockRepo.AssertExpectations(t)
}

func TestImportOrdersEndpoint_MissingFile(t *testing.T) {
	router := setupImportRouter(new(MockImportRepository))

	req := httptest.NewRequest(http.MethodPost, "/orders/import", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestImportOrdersEndpoint_EmptyFile(t *testing.T) {
	csv := "external_order_id,platform,variant_sku,order_date,quantity,selling_price\n"
	body, contentType := multipartBody(t, "orders.csv", csv)

	router := setupImportRouter(new(MockImportRepository))
	req := httptest.NewRequest(http.MethodPost, "/orders/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_FILE", resp.Error.Code)
}

func TestImportOrdersEndpoint_MissingColumn(t *testing.T) {
	csv := "external_order_id,platform,variant_sku,order_date,quantity\n" +
		"ORD-1,MEESHO,KRT-BLUE-M,2026-01-10,2\n"
	body, contentType := multipartBody(t, "orders.csv", csv)

	router := setupImportRouter(new(MockImportRepository))
	req := httptest.NewRequest(http.MethodPost, "/orders/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PARSE_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "selling_price")
}

func TestImportOrdersEndpoint_CommitFailure(t *testing.T) {
	mockRepo := new(MockImportRepository)
	variantID := uuid.New()
	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{{ID: variantID, SKU: "KRT-BLUE-M", Quantity: 50}}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(errors.New("deadlock detected"))

	csv := "external_order_id,platform,variant_sku,order_date,quantity,selling_price\n" +
		"ORD-1,MEESHO,KRT-BLUE-M,2026-01-10,2,499.00\n"
	body, contentType := multipartBody(t, "orders.csv", csv)

	router := setupImportRouter(mockRepo)
	req := httptest.NewRequest(http.MethodPost, "/orders/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "IMPORT_COMMIT_FAILED", resp.Error.Code)
}

func TestImportReturnsEndpoint_HappyPath(t *testing.T) {
	mockRepo := new(MockImportRepository)
	variantID := uuid.New()
	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{{ID: variantID, SKU: "KRT-BLUE-M", Quantity: 50}}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitReturnImport", "tenant-123", mock.Anything).
		Return(nil)

	csv := "external_return_id,platform,variant_sku,return_type,return_date,quantity,refund_amount,return_reason\n" +
		"RET-1,MEESHO,KRT-BLUE-M,RTO,2026-01-15,1,499.00,undelivered\n"
	body, contentType := multipartBody(t, "returns.csv", csv)

	router := setupImportRouter(mockRepo)
	req := httptest.NewRequest(http.MethodPost, "/returns/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ImportResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Restocked)
	mockRepo.AssertExpectations(t)
}

func TestGetOrderImportTemplate_CSV(t *testing.T) {
	router := setupImportRouter(new(MockImportRepository))

	req := httptest.NewRequest(http.MethodGet, "/orders/import/template?format=csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "external_order_id")
}
