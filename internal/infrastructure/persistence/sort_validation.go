package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// QuotationSortFields contains allowed sort fields for quotations
var QuotationSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"client_id":   true,
	"client_name": true,
	"issue_date":  true,
	"expiry_date": true,
	"total":       true,
	"status":      true,
	"sent_at":     true,
	"approved_at": true,
}

// SupplierOrderSortFields contains allowed sort fields for supplier orders
var SupplierOrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"supplier_id":    true,
	"supplier_name":  true,
	"order_date":     true,
	"delivery_date":  true,
	"total":          true,
	"status":         true,
	"payment_status": true,
	"sent_at":        true,
	"confirmed_at":   true,
	"received_at":    true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"ruc":          true,
	"contact_name": true,
	"status":       true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"ruc":          true,
	"contact_name": true,
	"status":       true,
}

// TransportSortFields contains allowed sort fields for transport companies
var TransportSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"ruc":        true,
	"status":     true,
}

// ReceivableSortFields contains allowed sort fields for receivables
var ReceivableSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"source_document": true,
	"client_id":       true,
	"client_name":     true,
	"total":           true,
	"paid_amount":     true,
	"balance":         true,
	"due_date":        true,
	"status":          true,
	"settled_at":      true,
}
