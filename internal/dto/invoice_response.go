package dto

import "github.com/buildmatpro/proforma-service/internal/domain"

type LineItemResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Manufacturer string   `json:"manufacturer"`
	Quantity     int64    `json:"quantity"`
	Unit         string   `json:"unit"`
	Image        string   `json:"image"`
	EditedImage  string   `json:"edited_image,omitempty"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Notes        string   `json:"notes,omitempty"`
	UnitPrice    string   `json:"unit_price"`
	Total        string   `json:"total"`
}

// InvoiceResponse carries the full invoice view. Monetary fields are
// formatted to two decimals here, at the presentation boundary.
type InvoiceResponse struct {
	SessionID  string                    `json:"session_id"`
	Customer   domain.CustomerDetails    `json:"customer"`
	Visibility domain.VisibilitySettings `json:"visibility"`
	Items      []LineItemResponse        `json:"items"`
	Subtotal   string                    `json:"subtotal"`
	TaxRate    string                    `json:"tax_rate"`
	Tax        string                    `json:"tax"`
	Total      string                    `json:"total"`
}

type ImageEditResponse struct {
	ProductID string `json:"product_id"`
	Image     string `json:"image"`
}
