package handler

// ExportRequest carries exactly one of OrderID or OrderIDs. TemplateType
// is an optional template-identifier override.
type ExportRequest struct {
	OrderID      *int64  `json:"orderId"`
	OrderIDs     []int64 `json:"orderIds"`
	TemplateType string  `json:"templateType"`
}

// ErrorResponse is the structured error body for failed exports
type ErrorResponse struct {
	Error string `json:"error"`
}
