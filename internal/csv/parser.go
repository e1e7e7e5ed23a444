package csv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// Parse turns raw catalog CSV text into records. The first line names the
// fields; each following line is one record. Commas inside double-quoted
// spans are literal content. Short rows pad missing trailing fields with
// empty strings. Unbalanced quotes are not repaired: the scan just runs to
// the end of the line in whatever state it is in.
func Parse(text string) []models.Record {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	rawHeaders := strings.Split(lines[0], ",")
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = stripQuotes(strings.TrimSpace(h))
	}

	var records []models.Record
	for _, line := range lines[1:] {
		values := splitLine(line)
		record := make(models.Record, len(headers))
		for i, header := range headers {
			if i < len(values) {
				record[header] = stripQuotes(values[i])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// ParseReader reads all of r and parses it as catalog CSV.
func ParseReader(r io.Reader) ([]models.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return Parse(string(data)), nil
}

// ParseFile parses the catalog CSV at path.
func ParseFile(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	return Parse(string(data)), nil
}

// splitLine splits one data line on commas outside quoted spans. A quote
// character toggles the in-quotes state and is dropped from the value.
func splitLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

// stripQuotes removes a leading and a trailing double quote independently.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
