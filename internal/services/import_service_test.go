package services

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

// MockImportRepository is a mock implementation of ImportRepositoryInterface
type MockImportRepository struct {
	mock.Mock
}

// Ensure MockImportRepository implements the interface
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

func newTestImportService(repo repository.ImportRepositoryInterface) *ImportService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewImportService(repo, logger)
}

func testVariant(sku string, quantity int) models.ProductVariant {
	return models.ProductVariant{
		ID:       uuid.New(),
		TenantID: "tenant-123",
		SKU:      sku,
		Name:     "Variant " + sku,
		Quantity: quantity,
	}
}

const orderHeader = "external_order_id,platform,variant_sku,order_date,quantity,selling_price\n"
const returnHeader = "external_return_id,platform,variant_sku,return_type,return_date,quantity,refund_amount,return_reason\n"

// ===========================================
// Order Import Tests
// ===========================================

func TestImportOrders_HappyPath(t *testing.T) {
	variant := testVariant("SKU-1", 50)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"MEE-001,MEESHO,SKU-1,2026-01-05,2,199.50\n" +
		"MEE-002,MEESHO,SKU-1,2026-01-06,1,199.50\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", []string{"SKU-1"}).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", []string{"MEE-001", "MEE-002"}).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.Errors)

	orders := mockRepo.Calls[2].Arguments.Get(1).([]*models.MarketplaceOrder)
	assert.Len(t, orders, 2)
	assert.Equal(t, "MEE-001", orders[0].ExternalOrderID)
	assert.Equal(t, variant.ID, orders[0].VariantID)
	assert.InDelta(t, 399.00, orders[0].Total, 0.001)

	deltas := mockRepo.Calls[2].Arguments.Get(2).(map[uuid.UUID]int)
	assert.Equal(t, 3, deltas[variant.ID])
}

func TestImportOrders_ReimportIsAllDuplicates(t *testing.T) {
	// Variant is fully depleted, yet re-importing the same file must report
	// duplicates, never stock errors: the duplicate check runs first.
	variant := testVariant("SKU-1", 0)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"MEE-001,MEESHO,SKU-1,2026-01-05,2,199.50\n" +
		"MEE-002,MEESHO,SKU-1,2026-01-06,5,199.50\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{"MEE-001", "MEE-002"}, nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, 0, result.StockErrors)
	for _, e := range result.Errors {
		assert.Equal(t, "DUPLICATE_ORDER", e.Code)
	}
	mockRepo.AssertNotCalled(t, "CommitOrderImport", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportOrders_StockDepletesAcrossRows(t *testing.T) {
	// 10 units, three rows of 4: the first two drain the accumulator to 2
	// and the third is rejected without touching the database.
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"ORD-1,FLIPKART,SKU-1,2026-02-01,4,100\n" +
		"ORD-2,FLIPKART,SKU-1,2026-02-01,4,100\n" +
		"ORD-3,FLIPKART,SKU-1,2026-02-01,4,100\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.StockErrors)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "INSUFFICIENT_STOCK", result.Errors[0].Code)
	assert.Equal(t, 4, result.Errors[0].Row)

	deltas := mockRepo.Calls[2].Arguments.Get(2).(map[uuid.UUID]int)
	assert.Equal(t, 8, deltas[variant.ID])
}

func TestImportOrders_DuplicateCheckedBeforeStock(t *testing.T) {
	// A duplicate row whose quantity exceeds stock counts as a duplicate,
	// not a stock error, and does not consume the accumulator.
	variant := testVariant("SKU-1", 3)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"OLD-1,AMAZON,SKU-1,2026-03-01,99,50\n" +
		"NEW-1,AMAZON,SKU-1,2026-03-01,3,50\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{"OLD-1"}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 0, result.StockErrors)
	assert.Equal(t, 1, result.Inserted)
}

func TestImportOrders_SameFileNovelDuplicatesBothInsert(t *testing.T) {
	// The existing-ID snapshot is taken once before commit, so two novel
	// rows sharing an external ID are both accepted by validation.
	variant := testVariant("SKU-1", 100)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"DUP-1,MEESHO,SKU-1,2026-01-05,1,10\n" +
		"DUP-1,MEESHO,SKU-1,2026-01-05,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Duplicates)
}

func TestImportOrders_MixedBatchConservation(t *testing.T) {
	variant := testVariant("SKU-1", 100)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	// rows: 2 good, 1 duplicate, 1 bad platform, 1 unknown SKU
	file := orderHeader +
		"ORD-1,MEESHO,SKU-1,2026-01-05,1,10\n" +
		"ORD-2,MEESHO,SKU-1,2026-01-05,1,10\n" +
		"OLD-9,MEESHO,SKU-1,2026-01-05,1,10\n" +
		"ORD-3,EBAY,SKU-1,2026-01-05,1,10\n" +
		"ORD-4,MEESHO,SKU-MISSING,2026-01-05,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{"OLD-9"}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 0, result.StockErrors)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, result.TotalRows,
		result.Inserted+result.Duplicates+result.StockErrors+result.Failed)

	// errors come back ordered by row number regardless of producing stage
	for i := 1; i < len(result.Errors); i++ {
		assert.LessOrEqual(t, result.Errors[i-1].Row, result.Errors[i].Row)
	}
}

func TestImportOrders_MissingColumnFailsWholeBatch(t *testing.T) {
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := "external_order_id,platform,sku,order_date,selling_price\n" +
		"ORD-1,MEESHO,SKU-1,2026-01-05,10\n"

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "FindVariantsBySKUs", mock.Anything, mock.Anything)
}

func TestImportOrders_EmptyFile(t *testing.T) {
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(orderHeader), "orders.csv")

	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Nil(t, result)
}

func TestImportOrders_CommitFailureIsFatal(t *testing.T) {
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader + "ORD-1,MEESHO,SKU-1,2026-01-05,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(errors.New("deadlock detected"))

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.ErrorIs(t, err, ErrImportCommit)
	assert.Nil(t, result)
}

func TestImportOrders_RowErrorAccounting(t *testing.T) {
	// A row with two empty required fields produces two errors but is only
	// counted once against the conservation total.
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"ORD-1,MEESHO,SKU-1,2026-01-05,1,10\n" +
		",MEESHO,,2026-01-05,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, result.TotalRows,
		result.Inserted+result.Duplicates+result.StockErrors+result.Failed)
}

func TestImportOrders_InvalidValues(t *testing.T) {
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader +
		"ORD-1,MEESHO,SKU-1,2026-01-05,zero,10\n" +
		"ORD-2,MEESHO,SKU-1,2026-01-05,-2,10\n" +
		"ORD-3,MEESHO,SKU-1,not-a-date,1,10\n" +
		"ORD-4,MEESHO,SKU-1,2026-01-05,1,0\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 4, result.Failed)
	codes := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"INVALID_QUANTITY", "INVALID_QUANTITY", "INVALID_DATE", "INVALID_AMOUNT"}, codes)
	mockRepo.AssertNotCalled(t, "CommitOrderImport", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportOrders_RFC3339DateAccepted(t *testing.T) {
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := orderHeader + "ORD-1,MEESHO,SKU-1,2026-01-05T10:30:00Z,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
}

// ===========================================
// Return Import Tests
// ===========================================

func TestImportReturns_RestockableAccounting(t *testing.T) {
	variant := testVariant("SKU-1", 5)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := returnHeader +
		"RET-1,MEESHO,SKU-1,RTO,2026-01-10,1,150,size issue\n" +
		"RET-2,MEESHO,SKU-1,EXCHANGE,2026-01-11,1,150,size issue\n" +
		"RET-3,MEESHO,SKU-1,CUSTOMER_RETURN,2026-01-12,2,300,size issue\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitReturnImport", "tenant-123", mock.Anything).
		Return(nil)

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 2, result.Restocked)

	returns := mockRepo.Calls[2].Arguments.Get(1).([]*models.MarketplaceReturn)
	assert.True(t, returns[0].Restocked)
	assert.False(t, returns[1].Restocked)
	assert.True(t, returns[2].Restocked)
}

func TestImportReturns_DuplicatesAndUnknownSKU(t *testing.T) {
	variant := testVariant("SKU-1", 5)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := returnHeader +
		"RET-1,MEESHO,SKU-1,RTO,2026-01-10,1,150,size issue\n" +
		"OLD-1,MEESHO,SKU-1,RTO,2026-01-10,1,150,size issue\n" +
		"RET-2,MEESHO,SKU-GONE,DTO,2026-01-10,1,150,size issue\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{"OLD-1"}, nil)
	mockRepo.On("CommitReturnImport", "tenant-123", mock.Anything).
		Return(nil)

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.TotalRows, result.Inserted+result.Duplicates+result.Failed)
}

func TestImportReturns_InvalidReturnType(t *testing.T) {
	variant := testVariant("SKU-1", 5)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := returnHeader + "RET-1,MEESHO,SKU-1,LOST,2026-01-10,1,150,size issue\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "INVALID_RETURN_TYPE", result.Errors[0].Code)
	mockRepo.AssertNotCalled(t, "CommitReturnImport", mock.Anything, mock.Anything)
}

func TestImportReturns_MissingReasonColumnFailsWholeBatch(t *testing.T) {
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := "external_return_id,platform,variant_sku,return_type,return_date,quantity,refund_amount\n" +
		"RET-1,MEESHO,SKU-1,RTO,2026-01-10,1,150\n"

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "return_reason")
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "FindVariantsBySKUs", mock.Anything, mock.Anything)
}

func TestImportReturns_EmptyReasonRejectsRow(t *testing.T) {
	variant := testVariant("SKU-1", 5)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := returnHeader +
		"RET-1,MEESHO,SKU-1,RTO,2026-01-10,1,150,\n" +
		"RET-2,MEESHO,SKU-1,RTO,2026-01-10,1,150,damaged\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitReturnImport", "tenant-123", mock.Anything).
		Return(nil)

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "REQUIRED_FIELD", result.Errors[0].Code)
	assert.Equal(t, "return_reason", result.Errors[0].Column)
}

// Files exported from the older spreadsheet templates say "sku" and "reason";
// both headers must keep importing.
func TestImportOrders_LegacyHeaderAliases(t *testing.T) {
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := "external_order_id,platform,sku,order_date,quantity,selling_price\n" +
		"ORD-1,MEESHO,SKU-1,2026-01-05,1,10\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader(file), "orders.csv")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Empty(t, result.Errors)
}

func TestImportReturns_LegacyHeaderAliases(t *testing.T) {
	variant := testVariant("SKU-1", 5)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	file := "external_return_id,platform,sku,return_type,return_date,quantity,refund_amount,reason\n" +
		"RET-1,MEESHO,SKU-1,RTO,2026-01-10,1,150,undelivered\n"

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingReturnIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitReturnImport", "tenant-123", mock.Anything).
		Return(nil)

	result, err := service.ImportReturns("tenant-123", "user-1", strings.NewReader(file), "returns.csv")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	returns := mockRepo.Calls[2].Arguments.Get(1).([]*models.MarketplaceReturn)
	assert.Equal(t, "undelivered", returns[0].Reason)
}

func TestImportOrders_XLSXFile(t *testing.T) {
	variant := testVariant("SKU-1", 10)
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"external_order_id", "platform", "variant_sku", "order_date", "quantity", "selling_price"}
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row1 := []interface{}{"ORD-1", "MEESHO", "SKU-1", "2026-01-05", "2", "199.50"}
	assert.NoError(t, f.SetSheetRow(sheet, "A2", &row1))
	row2 := []interface{}{"ORD-2", "FLIPKART", "SKU-1", "2026-01-06", "1", "175.00"}
	assert.NoError(t, f.SetSheetRow(sheet, "A3", &row2))

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))
	assert.NoError(t, f.Close())

	mockRepo.On("FindVariantsBySKUs", "tenant-123", mock.Anything).
		Return([]models.ProductVariant{variant}, nil)
	mockRepo.On("FindExistingOrderIDs", "tenant-123", mock.Anything).
		Return([]string{}, nil)
	mockRepo.On("CommitOrderImport", "tenant-123", mock.Anything, mock.Anything).
		Return(nil)

	result, err := service.ImportOrders("tenant-123", "user-1", &buf, "orders.xlsx")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.Errors)

	deltas := mockRepo.Calls[2].Arguments.Get(2).(map[uuid.UUID]int)
	assert.Equal(t, 3, deltas[variant.ID])
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	mockRepo := new(MockImportRepository)
	service := newTestImportService(mockRepo)

	_, err := service.ImportOrders("tenant-123", "user-1", strings.NewReader("x"), "orders.pdf")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CSV and XLSX")
}
