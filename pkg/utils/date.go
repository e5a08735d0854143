package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const dateLayout = "2006-01-02"

// GeneratePINumber builds a proforma invoice number of the form
// PI-<year>-<4-digit-random> from the supplied clock reading.
func GeneratePINumber(now time.Time) string {
	return fmt.Sprintf("PI-%d-%d", now.Year(), 1000+rand.IntN(9000))
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DefaultValidUntil returns the issue date plus the standard 30-day validity
// window used on proforma invoices.
func DefaultValidUntil(issued time.Time) string {
	return FormatDate(issued.AddDate(0, 0, 30))
}
