package poexcel

import (
	"context"
	"time"
)

// poexcel renders purchase orders into supplier-ready request-for-quote
// workbooks. The package is self-contained: callers map their storage
// models onto the export types below and get xlsx bytes back.

// LineItem is one part entry within an order. Unit price is carried for
// reference layouts but quote templates leave the price cell blank for
// the supplier to fill in.
type LineItem struct {
	PartNumber     string
	Name           string
	Description    string
	Specifications map[string]string
	Quantity       int
	UnitPrice      float64
}

// OrderInfo carries the order metadata shown in the header block
type OrderInfo struct {
	OrderNumber      string
	OrderDate        time.Time
	ExpectedDelivery time.Time
	Notes            string
	Priority         string
	Status           string
}

// SupplierInfo carries the supplier profile shown in the contact block
// plus the template identity and raw template configuration.
type SupplierInfo struct {
	Name           string
	ContactPerson  string
	Email          string
	Phone          string
	Address        string
	PaymentTerms   string
	TemplateType   string
	TemplateConfig string
}

// IssuerInfo identifies the company issuing the quote request. It is
// deployment-wide, not per order, and appears in every document header;
// the terms block refers suppliers back to its address.
type IssuerInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// SingleExport is the assembled model for a one-order document
type SingleExport struct {
	Order    OrderInfo
	Issuer   IssuerInfo
	Supplier SupplierInfo
	Items    []LineItem
}

// OrderGroup pairs one order with its line items inside a batch
type OrderGroup struct {
	Order OrderInfo
	Items []LineItem
}

// MultiExport is the assembled model for a combined document. All groups
// must already belong to the one supplier carried here; the batching
// invariant is enforced before layout, not in this package.
type MultiExport struct {
	Issuer   IssuerInfo
	Supplier SupplierInfo
	Groups   []OrderGroup
}

// LogoAsset is a decoded, ready-to-embed logo image
type LogoAsset struct {
	Data      []byte
	Extension string
	Width     int
	Height    int
}

// LogoSource fetches the raw logo bytes for a template identifier.
// Implementations live outside this package (e.g. a Datastore-backed
// store); any fetch failure is treated as absence by the cache.
type LogoSource interface {
	FetchLogo(ctx context.Context, templateType string) (*LogoAsset, error)
}

// SheetStats reports the computed row geometry of a rendered sheet so the
// workbook assembler can place freeze panes without re-deriving layout.
type SheetStats struct {
	HeaderRow      int
	FirstDataRow   int
	LastDataRow    int
	LastContentRow int
}
