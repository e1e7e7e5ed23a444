package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpContains Operator = "contains"
	OpEquals   Operator = "equals"
	OpStarts   Operator = "starts"
	OpGT       Operator = "gt"
	OpLT       Operator = "lt"
	OpGTE      Operator = "gte"
	OpLTE      Operator = "lte"
)

// Operators lists the supported operators in display order.
var Operators = []Operator{OpContains, OpEquals, OpStarts, OpGT, OpLT, OpGTE, OpLTE}

// Filter matches one field against a value with an operator. String
// operators compare case-insensitively; numeric operators parse both
// sides as float64 and exclude the record if either side fails to parse.
type Filter struct {
	Field string
	Op    Operator
	Value string
}

// ParseFilter parses the CLI form FIELD:OP:VALUE.
func ParseFilter(s string) (Filter, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return Filter{}, fmt.Errorf("invalid filter %q: want FIELD:OP:VALUE", s)
	}
	op := Operator(strings.ToLower(parts[1]))
	valid := false
	for _, o := range Operators {
		if op == o {
			valid = true
			break
		}
	}
	if !valid {
		return Filter{}, fmt.Errorf("invalid filter operator %q", parts[1])
	}
	return Filter{Field: parts[0], Op: op, Value: parts[2]}, nil
}

// Apply returns the records satisfying every filter.
func Apply(records []models.Record, filters []Filter) []models.Record {
	if len(filters) == 0 {
		return records
	}
	var out []models.Record
	for _, r := range records {
		if matchesAll(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r models.Record, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(r) {
			return false
		}
	}
	return true
}

// Matches reports whether the record satisfies the filter.
func (f Filter) Matches(r models.Record) bool {
	value := strings.ToLower(r.Get(f.Field))
	target := strings.ToLower(f.Value)

	switch f.Op {
	case OpContains:
		return strings.Contains(value, target)
	case OpEquals:
		return value == target
	case OpStarts:
		return strings.HasPrefix(value, target)
	case OpGT, OpLT, OpGTE, OpLTE:
		a, err1 := strconv.ParseFloat(value, 64)
		b, err2 := strconv.ParseFloat(target, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		switch f.Op {
		case OpGT:
			return a > b
		case OpLT:
			return a < b
		case OpGTE:
			return a >= b
		default:
			return a <= b
		}
	default:
		return true
	}
}

// Sort returns a sorted copy of records. Values that both parse as numbers
// compare numerically; otherwise comparison is case-insensitive
// lexicographic. The sort is stable, so ties keep their input order.
func Sort(records []models.Record, field string, descending bool) []models.Record {
	out := append([]models.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareField(out[i], out[j], field)
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareField(a, b models.Record, field string) int {
	av, bv := a.Get(field), b.Get(field)

	an, errA := strconv.ParseFloat(av, 64)
	bn, errB := strconv.ParseFloat(bv, 64)
	if errA == nil && errB == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
}

// GroupUnknown keys records whose grouping field is absent or empty.
const GroupUnknown = "Unknown"

// Group partitions records by field value, preserving input order within
// each group. Every record lands in exactly one group.
func Group(records []models.Record, field string) map[string][]models.Record {
	groups := make(map[string][]models.Record)
	for _, r := range records {
		key := r.Get(field)
		if key == "" {
			key = GroupUnknown
		}
		groups[key] = append(groups[key], r)
	}
	return groups
}

// GroupKeys returns the group keys sorted lexicographically, the order
// groups are presented in.
func GroupKeys(groups map[string][]models.Record) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Search filters records by a case-insensitive substring match against the
// style, description, and UPC fields. An empty term matches everything.
func Search(records []models.Record, term string) []models.Record {
	if term == "" {
		return records
	}
	term = strings.ToLower(term)
	var out []models.Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Get(models.FieldStyle)), term) ||
			strings.Contains(strings.ToLower(r.Get(models.FieldDesc)), term) ||
			strings.Contains(strings.ToLower(r.Get(models.FieldUPC)), term) {
			out = append(out, r)
		}
	}
	return out
}

// FormatPrice renders a price string to two decimal places, "0.00" when it
// does not parse.
func FormatPrice(s string) string {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "0.00"
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}
