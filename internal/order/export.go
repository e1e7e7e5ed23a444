package order

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// ExportRow is one line of an exported order. The csv tags fix the header
// to the published export format.
type ExportRow struct {
	CustomerName string  `csv:"Customer Name"`
	CustomerID   string  `csv:"Customer ID"`
	Style        string  `csv:"Style"`
	Description  string  `csv:"Description"`
	Quantity     int     `csv:"Quantity"`
	CasePrice    float64 `csv:"Case Price"`
	LineTotal    string  `csv:"Line Total"`
}

// Export writes the ledger as CSV: one row per ordered style, resolved
// against products. Styles missing from the product list are skipped.
// Line total is price times quantity to two decimal places; a price that
// does not parse counts as zero.
func Export(w io.Writer, customerName, customerID string, ledger *Ledger, products []models.Record) error {
	if customerName == "" {
		customerName = "Unknown"
	}
	if customerID == "" {
		customerID = "N/A"
	}

	byStyle := make(map[string]models.Record, len(products))
	for _, p := range products {
		byStyle[p.Style()] = p
	}

	items := ledger.Items()
	styles := make([]string, 0, len(items))
	for style := range items {
		styles = append(styles, style)
	}
	sort.Strings(styles)

	cw := stdcsv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for _, style := range styles {
		p, ok := byStyle[style]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(p.Get(models.FieldPriceCase), 64)
		if err != nil {
			price = 0
		}
		qty := items[style]
		row := ExportRow{
			CustomerName: customerName,
			CustomerID:   customerID,
			Style:        style,
			Description:  p.Desc(),
			Quantity:     qty,
			CasePrice:    price,
			LineTotal:    strconv.FormatFloat(price*float64(qty), 'f', 2, 64),
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode order row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write order CSV: %w", err)
	}
	return nil
}

// ExportFilename names an exported order file for a customer and date.
// Path separators in the customer ID (the "N/A" placeholder in particular)
// are replaced so the name is always creatable as a plain file.
func ExportFilename(customerID string, now time.Time) string {
	id := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, customerID)
	return fmt.Sprintf("order_%s_%s.csv", id, now.Format("2006-01-02"))
}
