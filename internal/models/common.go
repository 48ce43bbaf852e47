package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON type for PostgreSQL JSONB
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Platform identifies the marketplace an order or return originated from
type Platform string

const (
	PlatformMeesho   Platform = "MEESHO"
	PlatformFlipkart Platform = "FLIPKART"
	PlatformAmazon   Platform = "AMAZON"
)

// ParsePlatform normalizes a raw platform value, reporting whether it is valid
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformMeesho, PlatformFlipkart, PlatformAmazon:
		return Platform(s), true
	}
	return "", false
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}
