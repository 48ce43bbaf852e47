package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

// ErrImportCommit wraps a transaction failure during the commit stage. The
// batch is rolled back completely; none of the accepted rows were written.
var ErrImportCommit = errors.New("import commit failed")

// ErrEmptyFile is returned when the uploaded file has no data rows
var ErrEmptyFile = errors.New("the file contains no data rows")

var importDateFormats = []string{"2006-01-02", time.RFC3339}

func parseImportDate(s string) (time.Time, error) {
	for _, layout := range importDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected YYYY-MM-DD", s)
}

var orderRequiredColumns = []string{"external_order_id", "platform", "variant_sku", "order_date", "quantity", "selling_price"}
var returnRequiredColumns = []string{"external_return_id", "platform", "variant_sku", "return_type", "return_date", "quantity", "refund_amount", "return_reason"}

// columnAliases maps shorthand header names onto their canonical column.
// Files exported from earlier spreadsheet templates say "sku" and "reason".
var columnAliases = map[string]string{
	"sku":    "variant_sku",
	"reason": "return_reason",
}

func canonicalColumn(h string) string {
	h = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(h)), " *")
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

// ImportService runs the bulk order and return imports. Each import is three
// sequential stages over the uploaded file: parse rows and reject structurally
// broken ones, validate the survivors against exactly two batched lookups,
// then commit everything accepted in one transaction.
type ImportService struct {
	repo   repository.ImportRepositoryInterface
	logger *logrus.Logger
}

func NewImportService(repo repository.ImportRepositoryInterface, logger *logrus.Logger) *ImportService {
	return &ImportService{repo: repo, logger: logger}
}

// rowOutcome tags what the validator decided for a single parsed row
type rowOutcome int

const (
	rowAccepted rowOutcome = iota
	rowDuplicate
	rowStockError
	rowFailed
)

type orderRow struct {
	num        int
	externalID string
	platform   models.Platform
	sku        string
	status     models.OrderStatus
	orderDate  time.Time
	quantity   int
	unitPrice  float64
	notes      *string
}

type returnRow struct {
	num          int
	externalID   string
	platform     models.Platform
	sku          string
	returnType   models.ReturnType
	returnDate   time.Time
	quantity     int
	refundAmount float64
	reason       string
}

// ImportOrders parses, validates and commits a marketplace order file.
// Structural problems with the file itself (unreadable, empty, missing
// required columns) fail the whole request; everything past that point is
// accounted per row in the returned ImportResult.
func (s *ImportService) ImportOrders(tenantID, userID string, file io.Reader, filename string) (*models.ImportResult, error) {
	rows, headers, err := s.parseFile(file, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	if err := checkRequiredColumns(headers, orderRequiredColumns); err != nil {
		return nil, err
	}

	parsed, parseErrors, failedRows := parseOrderRows(rows)

	skus := make([]string, 0, len(parsed))
	externalIDs := make([]string, 0, len(parsed))
	seenSKU := make(map[string]bool)
	for _, r := range parsed {
		if !seenSKU[r.sku] {
			seenSKU[r.sku] = true
			skus = append(skus, r.sku)
		}
		externalIDs = append(externalIDs, r.externalID)
	}

	variants, err := s.repo.FindVariantsBySKUs(tenantID, skus)
	if err != nil {
		return nil, fmt.Errorf("variant lookup: %w", err)
	}
	existingIDs, err := s.repo.FindExistingOrderIDs(tenantID, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("duplicate lookup: %w", err)
	}

	verdict := validateOrderRows(tenantID, userID, parsed, variants, existingIDs)

	if len(verdict.accepted) > 0 {
		if err := s.repo.CommitOrderImport(tenantID, verdict.accepted, verdict.stockDeltas); err != nil {
			s.logger.WithFields(logrus.Fields{
				"tenant_id": tenantID,
				"rows":      len(verdict.accepted),
			}).WithError(err).Error("Order import commit failed")
			return nil, fmt.Errorf("%w: %v", ErrImportCommit, err)
		}
	}

	result := &models.ImportResult{
		TotalRows:   len(rows),
		Inserted:    len(verdict.accepted),
		Duplicates:  verdict.duplicates,
		StockErrors: verdict.stockErrors,
		Failed:      failedRows + verdict.failed,
		Errors:      append(parseErrors, verdict.errors...),
	}
	sortRowErrors(result.Errors)
	result.Success = result.Failed == 0 && result.StockErrors == 0

	s.logger.WithFields(logrus.Fields{
		"tenant_id":    tenantID,
		"total_rows":   result.TotalRows,
		"inserted":     result.Inserted,
		"duplicates":   result.Duplicates,
		"stock_errors": result.StockErrors,
		"failed":       result.Failed,
	}).Info("Order import completed")

	return result, nil
}

// ImportReturns parses, validates and commits a marketplace return file.
// Returns have no stock precondition; restockable rows add their quantity
// back to inventory inside the commit transaction.
func (s *ImportService) ImportReturns(tenantID, userID string, file io.Reader, filename string) (*models.ImportResult, error) {
	rows, headers, err := s.parseFile(file, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	if err := checkRequiredColumns(headers, returnRequiredColumns); err != nil {
		return nil, err
	}

	parsed, parseErrors, failedRows := parseReturnRows(rows)

	skus := make([]string, 0, len(parsed))
	externalIDs := make([]string, 0, len(parsed))
	seenSKU := make(map[string]bool)
	for _, r := range parsed {
		if !seenSKU[r.sku] {
			seenSKU[r.sku] = true
			skus = append(skus, r.sku)
		}
		externalIDs = append(externalIDs, r.externalID)
	}

	variants, err := s.repo.FindVariantsBySKUs(tenantID, skus)
	if err != nil {
		return nil, fmt.Errorf("variant lookup: %w", err)
	}
	existingIDs, err := s.repo.FindExistingReturnIDs(tenantID, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("duplicate lookup: %w", err)
	}

	verdict := validateReturnRows(tenantID, userID, parsed, variants, existingIDs)

	if len(verdict.accepted) > 0 {
		if err := s.repo.CommitReturnImport(tenantID, verdict.accepted); err != nil {
			s.logger.WithFields(logrus.Fields{
				"tenant_id": tenantID,
				"rows":      len(verdict.accepted),
			}).WithError(err).Error("Return import commit failed")
			return nil, fmt.Errorf("%w: %v", ErrImportCommit, err)
		}
	}

	result := &models.ImportResult{
		TotalRows:  len(rows),
		Inserted:   len(verdict.accepted),
		Duplicates: verdict.duplicates,
		Restocked:  verdict.restocked,
		Failed:     failedRows + verdict.failed,
		Errors:     append(parseErrors, verdict.errors...),
	}
	sortRowErrors(result.Errors)
	result.Success = result.Failed == 0

	s.logger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"total_rows": result.TotalRows,
		"inserted":   result.Inserted,
		"duplicates": result.Duplicates,
		"restocked":  result.Restocked,
		"failed":     result.Failed,
	}).Info("Return import completed")

	return result, nil
}

// parseOrderRows runs the per-row structural checks. A row failing any check
// is excluded and its problems recorded; later rows are still processed.
// Returns the surviving rows, the errors, and the count of excluded rows
// (a row with two empty required fields produces two errors but counts once).
func parseOrderRows(rows []map[string]string) ([]orderRow, []models.ImportRowError, int) {
	parsed := make([]orderRow, 0, len(rows))
	rowErrors := make([]models.ImportRowError, 0)
	failed := 0

	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])
		errsBefore := len(rowErrors)

		for _, col := range orderRequiredColumns {
			if row[col] == "" {
				rowErrors = append(rowErrors, models.ImportRowError{
					Row: rowNum, Column: col, Code: "REQUIRED_FIELD",
					Message: fmt.Sprintf("Required field '%s' is empty", col),
				})
			}
		}
		if len(rowErrors) > errsBefore {
			failed++
			continue
		}

		r := orderRow{
			num:        rowNum,
			externalID: row["external_order_id"],
			sku:        row["variant_sku"],
			status:     models.OrderStatusPending,
		}

		platform, ok := models.ParsePlatform(strings.ToUpper(row["platform"]))
		if !ok {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "platform", Code: "INVALID_PLATFORM",
				Message: fmt.Sprintf("Unknown platform %q", row["platform"]),
			})
			failed++
			continue
		}
		r.platform = platform

		qty, err := strconv.Atoi(row["quantity"])
		if err != nil || qty <= 0 {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "quantity", Code: "INVALID_QUANTITY",
				Message: fmt.Sprintf("Quantity must be a positive integer, got %q", row["quantity"]),
			})
			failed++
			continue
		}
		r.quantity = qty

		price, err := strconv.ParseFloat(row["selling_price"], 64)
		if err != nil || price <= 0 {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "selling_price", Code: "INVALID_AMOUNT",
				Message: fmt.Sprintf("Selling price must be a positive number, got %q", row["selling_price"]),
			})
			failed++
			continue
		}
		r.unitPrice = price

		orderDate, err := parseImportDate(row["order_date"])
		if err != nil {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "order_date", Code: "INVALID_DATE",
				Message: err.Error(),
			})
			failed++
			continue
		}
		r.orderDate = orderDate

		if raw := row["status"]; raw != "" {
			status := models.OrderStatus(strings.ToUpper(raw))
			switch status {
			case models.OrderStatusPending, models.OrderStatusShipped,
				models.OrderStatusDelivered, models.OrderStatusCancelled:
				r.status = status
			default:
				rowErrors = append(rowErrors, models.ImportRowError{
					Row: rowNum, Column: "status", Code: "INVALID_STATUS",
					Message: fmt.Sprintf("Unknown order status %q", raw),
				})
				failed++
				continue
			}
		}
		if notes := row["notes"]; notes != "" {
			r.notes = &notes
		}

		parsed = append(parsed, r)
	}

	return parsed, rowErrors, failed
}

func parseReturnRows(rows []map[string]string) ([]returnRow, []models.ImportRowError, int) {
	parsed := make([]returnRow, 0, len(rows))
	rowErrors := make([]models.ImportRowError, 0)
	failed := 0

	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])
		errsBefore := len(rowErrors)

		for _, col := range returnRequiredColumns {
			if row[col] == "" {
				rowErrors = append(rowErrors, models.ImportRowError{
					Row: rowNum, Column: col, Code: "REQUIRED_FIELD",
					Message: fmt.Sprintf("Required field '%s' is empty", col),
				})
			}
		}
		if len(rowErrors) > errsBefore {
			failed++
			continue
		}

		r := returnRow{
			num:        rowNum,
			externalID: row["external_return_id"],
			sku:        row["variant_sku"],
			reason:     row["return_reason"],
		}

		platform, ok := models.ParsePlatform(strings.ToUpper(row["platform"]))
		if !ok {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "platform", Code: "INVALID_PLATFORM",
				Message: fmt.Sprintf("Unknown platform %q", row["platform"]),
			})
			failed++
			continue
		}
		r.platform = platform

		returnType, ok := models.ParseReturnType(strings.ToUpper(row["return_type"]))
		if !ok {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "return_type", Code: "INVALID_RETURN_TYPE",
				Message: fmt.Sprintf("Unknown return type %q", row["return_type"]),
			})
			failed++
			continue
		}
		r.returnType = returnType

		qty, err := strconv.Atoi(row["quantity"])
		if err != nil || qty <= 0 {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "quantity", Code: "INVALID_QUANTITY",
				Message: fmt.Sprintf("Quantity must be a positive integer, got %q", row["quantity"]),
			})
			failed++
			continue
		}
		r.quantity = qty

		refund, err := strconv.ParseFloat(row["refund_amount"], 64)
		if err != nil || refund <= 0 {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "refund_amount", Code: "INVALID_AMOUNT",
				Message: fmt.Sprintf("Refund amount must be a positive number, got %q", row["refund_amount"]),
			})
			failed++
			continue
		}
		r.refundAmount = refund

		returnDate, err := parseImportDate(row["return_date"])
		if err != nil {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row: rowNum, Column: "return_date", Code: "INVALID_DATE",
				Message: err.Error(),
			})
			failed++
			continue
		}
		r.returnDate = returnDate

		parsed = append(parsed, r)
	}

	return parsed, rowErrors, failed
}

type orderVerdicts struct {
	accepted    []*models.MarketplaceOrder
	stockDeltas map[uuid.UUID]int
	duplicates  int
	stockErrors int
	failed      int
	errors      []models.ImportRowError
}

// validateOrderRows decides each row against the two pre-fetched snapshots.
// Pure over its inputs: the only state it carries between rows is the
// remaining-stock accumulator, so same-SKU rows in one file see the balance
// left by earlier accepted rows. The duplicate check always runs before the
// stock check, so re-importing a file never reports stock errors for rows
// that are already in the database.
func validateOrderRows(tenantID, userID string, parsed []orderRow, variants []models.ProductVariant, existingIDs []string) orderVerdicts {
	variantBySKU := make(map[string]*models.ProductVariant, len(variants))
	remaining := make(map[uuid.UUID]int, len(variants))
	for i := range variants {
		variantBySKU[variants[i].SKU] = &variants[i]
		remaining[variants[i].ID] = variants[i].Quantity
	}
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	v := orderVerdicts{
		accepted:    make([]*models.MarketplaceOrder, 0, len(parsed)),
		stockDeltas: make(map[uuid.UUID]int),
		errors:      make([]models.ImportRowError, 0),
	}

	for _, r := range parsed {
		switch outcome, rowErr := judgeOrderRow(r, variantBySKU, remaining, existing); outcome {
		case rowDuplicate:
			v.duplicates++
			v.errors = append(v.errors, *rowErr)
		case rowFailed:
			v.failed++
			v.errors = append(v.errors, *rowErr)
		case rowStockError:
			v.stockErrors++
			v.errors = append(v.errors, *rowErr)
		case rowAccepted:
			variant := variantBySKU[r.sku]
			remaining[variant.ID] -= r.quantity
			v.stockDeltas[variant.ID] += r.quantity
			v.accepted = append(v.accepted, &models.MarketplaceOrder{
				TenantID:        tenantID,
				ExternalOrderID: r.externalID,
				Platform:        r.platform,
				Status:          r.status,
				VariantID:       variant.ID,
				SKU:             r.sku,
				OrderDate:       r.orderDate,
				Quantity:        r.quantity,
				SellingPrice:    r.unitPrice,
				Total:           r.unitPrice * float64(r.quantity),
				Notes:           r.notes,
				CreatedBy:       &userID,
			})
		}
	}

	return v
}

// judgeOrderRow tags one row. Check order matters: duplicates never consult
// stock, and unknown SKUs never count against stock either.
func judgeOrderRow(r orderRow, variantBySKU map[string]*models.ProductVariant, remaining map[uuid.UUID]int, existing map[string]bool) (rowOutcome, *models.ImportRowError) {
	if existing[r.externalID] {
		return rowDuplicate, &models.ImportRowError{
			Row: r.num, Column: "external_order_id", Code: "DUPLICATE_ORDER",
			Message: fmt.Sprintf("Order %q was already imported", r.externalID),
		}
	}
	variant, ok := variantBySKU[r.sku]
	if !ok {
		return rowFailed, &models.ImportRowError{
			Row: r.num, Column: "variant_sku", Code: "UNKNOWN_SKU",
			Message: fmt.Sprintf("No variant with SKU %q", r.sku),
		}
	}
	if r.quantity > remaining[variant.ID] {
		return rowStockError, &models.ImportRowError{
			Row: r.num, Column: "quantity", Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("SKU %q has %d units left, row needs %d", r.sku, remaining[variant.ID], r.quantity),
		}
	}
	return rowAccepted, nil
}

type returnVerdicts struct {
	accepted   []*models.MarketplaceReturn
	duplicates int
	restocked  int
	failed     int
	errors     []models.ImportRowError
}

// validateReturnRows mirrors the order validator without a stock check.
// The existing-ID snapshot is taken once before commit, so two novel rows
// sharing an external ID within one file are both accepted.
func validateReturnRows(tenantID, userID string, parsed []returnRow, variants []models.ProductVariant, existingIDs []string) returnVerdicts {
	variantBySKU := make(map[string]*models.ProductVariant, len(variants))
	for i := range variants {
		variantBySKU[variants[i].SKU] = &variants[i]
	}
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	v := returnVerdicts{
		accepted: make([]*models.MarketplaceReturn, 0, len(parsed)),
		errors:   make([]models.ImportRowError, 0),
	}

	for _, r := range parsed {
		if existing[r.externalID] {
			v.duplicates++
			v.errors = append(v.errors, models.ImportRowError{
				Row: r.num, Column: "external_return_id", Code: "DUPLICATE_RETURN",
				Message: fmt.Sprintf("Return %q was already imported", r.externalID),
			})
			continue
		}
		variant, ok := variantBySKU[r.sku]
		if !ok {
			v.failed++
			v.errors = append(v.errors, models.ImportRowError{
				Row: r.num, Column: "variant_sku", Code: "UNKNOWN_SKU",
				Message: fmt.Sprintf("No variant with SKU %q", r.sku),
			})
			continue
		}

		restock := r.returnType.Restockable()
		if restock {
			v.restocked++
		}
		v.accepted = append(v.accepted, &models.MarketplaceReturn{
			TenantID:         tenantID,
			ExternalReturnID: r.externalID,
			Platform:         r.platform,
			ReturnType:       r.returnType,
			VariantID:        variant.ID,
			SKU:              r.sku,
			ReturnDate:       r.returnDate,
			Quantity:         r.quantity,
			RefundAmount:     r.refundAmount,
			Reason:           r.reason,
			Restocked:        restock,
			CreatedBy:        &userID,
		})
	}

	return v
}

func checkRequiredColumns(headers []string, required []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func sortRowErrors(errs []models.ImportRowError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Row < errs[j].Row
	})
}

func (s *ImportService) parseFile(file io.Reader, filename string) ([]map[string]string, []string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return s.parseCSV(file)
	} else if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return s.parseXLSX(file)
	}
	return nil, nil, fmt.Errorf("only CSV and XLSX files are supported")
}

func (s *ImportService) parseCSV(file io.Reader) ([]map[string]string, []string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for i := range headers {
		headers[i] = canonicalColumn(headers[i])
	}

	var rows []map[string]string
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}

	return rows, headers, nil
}

func (s *ImportService) parseXLSX(file io.Reader) ([]map[string]string, []string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, nil, ErrEmptyFile
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = canonicalColumn(headers[i])
	}

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}

	return rows, headers, nil
}
