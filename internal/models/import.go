package models

// ImportRowError represents an error for a specific row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult represents the fully-accounted outcome of a bulk import.
// For order imports every input row lands in exactly one of Inserted,
// Duplicates, StockErrors or Failed, so those four always sum to TotalRows.
type ImportResult struct {
	Success     bool             `json:"success"`
	TotalRows   int              `json:"totalRows"`
	Inserted    int              `json:"inserted"`
	Duplicates  int              `json:"duplicates"`
	StockErrors int              `json:"stockErrors"`
	Restocked   int              `json:"restocked"`
	Failed      int              `json:"failed"`
	Errors      []ImportRowError `json:"errors"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData []map[string]string    `json:"sampleData,omitempty"`
}
