package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/buildmatpro/proforma-service/internal/domain"
	"github.com/shopspring/decimal"
)

// buildInvoiceCSV renders the invoice as RFC 4180 CSV. Monetary fields are
// formatted to two decimals with round-half-away-from-zero (StringFixed).
// Output is deterministic for identical invoice state.
func buildInvoiceCSV(invoice *domain.Invoice, taxRate decimal.Decimal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Product", "Category"}
	if invoice.Visibility.ShowManufacturer {
		headers = append(headers, "Manufacturer")
	}
	headers = append(headers, "Quantity", "Unit", "Unit Price", "Total")
	if invoice.Visibility.ShowNotes {
		headers = append(headers, "Notes")
	}

	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, item := range invoice.Items {
		row := []string{item.ID, item.Name, item.Category}
		if invoice.Visibility.ShowManufacturer {
			row = append(row, item.Manufacturer)
		}
		row = append(row,
			strconv.FormatInt(item.Quantity, 10),
			item.Unit,
			item.Price.StringFixed(2),
			item.LineTotal().StringFixed(2),
		)
		if invoice.Visibility.ShowNotes {
			row = append(row, item.Notes)
		}

		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	// Blank separator row before the summary block.
	if err := w.Write([]string{""}); err != nil {
		return nil, err
	}

	totals := invoice.ComputeTotals(taxRate)
	taxLabel := fmt.Sprintf("Tax (%s%%)", taxRate.Mul(decimal.NewFromInt(100)).String())

	// Summary labels sit under the Unit Price column, values under Total.
	width := len(headers)
	labelIdx := width - 2
	valueIdx := width - 1
	if invoice.Visibility.ShowNotes {
		labelIdx--
		valueIdx--
	}

	summary := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", totals.Subtotal},
		{taxLabel, totals.Tax},
		{"Total", totals.Total},
	}

	for _, line := range summary {
		row := make([]string, width)
		row[labelIdx] = line.label
		row[valueIdx] = line.value.StringFixed(2)

		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
