package domain

import (
	"database/sql"
	"time"
)

// ==================== PROCUREMENT CORE ====================

// Order represents the orders table
type Order struct {
	ID               int64         `json:"id" db:"id"`
	OrderNumber      string        `json:"order_number" db:"order_number"`
	OrderDate        time.Time     `json:"order_date" db:"order_date"`
	ExpectedDelivery time.Time     `json:"expected_delivery" db:"expected_delivery"`
	Notes            string        `json:"notes" db:"notes"`
	Priority         string        `json:"priority" db:"priority"`
	Status           string        `json:"status" db:"status"`
	SupplierID       sql.NullInt64 `json:"supplier_id" db:"supplier_id"`
}

// Supplier represents the suppliers table
type Supplier struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	ContactPerson  string `json:"contact_person" db:"contact_person"`
	Email          string `json:"email" db:"email"`
	Phone          string `json:"phone" db:"phone"`
	Address        string `json:"address" db:"address"`
	PaymentTerms   string `json:"payment_terms" db:"payment_terms"`
	LogoRef        string `json:"logo_ref" db:"logo_ref"`
	TemplateType   string `json:"template_type" db:"template_type"`
	TemplateConfig string `json:"template_config" db:"template_config"`
}

// Part represents one line item of an order
type Part struct {
	PartNumber     string            `json:"part_number" db:"part_number"`
	Name           string            `json:"name" db:"name"`
	Description    string            `json:"description" db:"description"`
	Specifications map[string]string `json:"specifications" db:"specifications"`
	Quantity       int               `json:"quantity" db:"quantity"`
	UnitPrice      float64           `json:"unit_price" db:"unit_price"`
}

// OrderBundle is the composite read of one order with its relations.
// Supplier is nil when the order has no supplier assigned.
type OrderBundle struct {
	Order    Order
	Supplier *Supplier
	Parts    []Part
}

// ExportHistoryRecord is one append-only row of the export ledger
type ExportHistoryRecord struct {
	OrderID    int64     `json:"order_id" db:"order_id"`
	ExportType string    `json:"export_type" db:"export_type"`
	ExportedBy string    `json:"exported_by" db:"exported_by"`
	Filename   string    `json:"filename" db:"filename"`
	ExportedAt time.Time `json:"exported_at" db:"exported_at"`
}

// ExportResult is the finished artifact handed back to the HTTP boundary
type ExportResult struct {
	Filename string
	Data     []byte
}
