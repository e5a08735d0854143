package domain

import (
	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/shopspring/decimal"
)

// LineItem is one product entry on the proforma invoice. It carries its own
// quantity and price copy so later catalog changes never affect an invoice
// that is already being edited.
type LineItem struct {
	Product
	Quantity    int64  `json:"quantity"`
	EditedImage string `json:"edited_image,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// DisplayImage returns the override image when one has been generated,
// otherwise the catalog image.
func (li LineItem) DisplayImage() string {
	if li.EditedImage != "" {
		return li.EditedImage
	}
	return li.Image
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(li.Quantity))
}

type CustomerDetails struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PINumber   string `json:"pi_number"`
	Date       string `json:"date"`
	ValidUntil string `json:"valid_until"`
}

const (
	FlagManufacturer = "manufacturer"
	FlagDescription  = "description"
	FlagImages       = "images"
	FlagUnit         = "unit"
	FlagNotes        = "notes"
)

// VisibilitySettings are rendering hints only; they never change what the
// invoice computes.
type VisibilitySettings struct {
	ShowManufacturer bool `json:"show_manufacturer"`
	ShowDescription  bool `json:"show_description"`
	ShowImages       bool `json:"show_images"`
	ShowUnit         bool `json:"show_unit"`
	ShowNotes        bool `json:"show_notes"`
}

func DefaultVisibilitySettings() VisibilitySettings {
	return VisibilitySettings{
		ShowManufacturer: true,
		ShowDescription:  true,
		ShowImages:       true,
		ShowUnit:         true,
		ShowNotes:        false,
	}
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Invoice holds the whole editable state of one proforma invoice session.
// Mutations go through the named operations below; none of them touch the
// catalog or any line item other than the addressed one.
type Invoice struct {
	Items      []LineItem         `json:"items"`
	Customer   CustomerDetails    `json:"customer"`
	Visibility VisibilitySettings `json:"visibility"`
}

func NewInvoice(customer CustomerDetails) *Invoice {
	return &Invoice{
		Items:      []LineItem{},
		Customer:   customer,
		Visibility: DefaultVisibilitySettings(),
	}
}

func (inv *Invoice) findIndex(productID string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (inv *Invoice) FindItem(productID string) (LineItem, bool) {
	idx := inv.findIndex(productID)
	if idx < 0 {
		return LineItem{}, false
	}
	return inv.Items[idx], true
}

// ToggleItem removes the product's line item when present, otherwise inserts
// a fresh one with quantity 1. Toggling twice restores the prior membership.
func (inv *Invoice) ToggleItem(product Product) (added bool) {
	if idx := inv.findIndex(product.ID); idx >= 0 {
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
		return false
	}

	inv.Items = append(inv.Items, LineItem{
		Product:  product,
		Quantity: 1,
	})

	return true
}

// SetQuantity stores the supplied quantity on the matching line item.
// Quantities below 1 are rejected so stored state always satisfies qty >= 1.
func (inv *Invoice) SetQuantity(productID string, quantity int64) error {
	if quantity < 1 {
		return errs.ErrInvalidQuantity
	}

	idx := inv.findIndex(productID)
	if idx < 0 {
		return errs.ErrItemNotFound
	}

	inv.Items[idx].Quantity = quantity
	return nil
}

func (inv *Invoice) SetItemImage(productID string, image string) error {
	idx := inv.findIndex(productID)
	if idx < 0 {
		return errs.ErrItemNotFound
	}

	inv.Items[idx].EditedImage = image
	return nil
}

func (inv *Invoice) SetItemNotes(productID string, notes string) error {
	idx := inv.findIndex(productID)
	if idx < 0 {
		return errs.ErrItemNotFound
	}

	inv.Items[idx].Notes = notes
	return nil
}

// RemoveItem deletes the matching line item. Removing an absent id is a
// no-op so a stale delete can never fail the session.
func (inv *Invoice) RemoveItem(productID string) {
	if idx := inv.findIndex(productID); idx >= 0 {
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
	}
}

func (inv *Invoice) UpdateCustomer(customer CustomerDetails) {
	inv.Customer = customer
}

func (inv *Invoice) ToggleVisibility(flag string) error {
	switch flag {
	case FlagManufacturer:
		inv.Visibility.ShowManufacturer = !inv.Visibility.ShowManufacturer
	case FlagDescription:
		inv.Visibility.ShowDescription = !inv.Visibility.ShowDescription
	case FlagImages:
		inv.Visibility.ShowImages = !inv.Visibility.ShowImages
	case FlagUnit:
		inv.Visibility.ShowUnit = !inv.Visibility.ShowUnit
	case FlagNotes:
		inv.Visibility.ShowNotes = !inv.Visibility.ShowNotes
	default:
		return errs.ErrClient
	}

	return nil
}

// ComputeTotals recomputes the derived amounts from current state. Arithmetic
// stays exact; rounding happens only when amounts are formatted for display.
func (inv *Invoice) ComputeTotals(taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(taxRate)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
