package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joesqua18-code/holidaybasics/internal/models"
)

func rec(pairs ...string) models.Record {
	r := make(models.Record, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r[pairs[i]] = pairs[i+1]
	}
	return r
}

func TestApply(t *testing.T) {
	records := []models.Record{
		rec("STYLE", "A1", "PRICE_CS", "10"),
		rec("STYLE", "B2", "PRICE_CS", "25"),
	}

	t.Run("numeric greater-than", func(t *testing.T) {
		out := Apply(records, []Filter{{Field: "PRICE_CS", Op: OpGT, Value: "15"}})
		require.Len(t, out, 1)
		assert.Equal(t, "B2", out[0].Style())
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		out := Apply(records, []Filter{
			{Field: "PRICE_CS", Op: OpGT, Value: "5"},
			{Field: "STYLE", Op: OpStarts, Value: "a"},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "A1", out[0].Style())
	})

	t.Run("string operators are case-insensitive", func(t *testing.T) {
		out := Apply(records, []Filter{{Field: "STYLE", Op: OpEquals, Value: "b2"}})
		require.Len(t, out, 1)
		assert.Equal(t, "B2", out[0].Style())

		out = Apply(records, []Filter{{Field: "STYLE", Op: OpContains, Value: "A"}})
		assert.Len(t, out, 1)
	})

	t.Run("missing field reads as empty string", func(t *testing.T) {
		out := Apply(records, []Filter{{Field: "CATEGORY", Op: OpEquals, Value: ""}})
		assert.Len(t, out, 2)
	})

	t.Run("unparseable side of a numeric comparison excludes the record", func(t *testing.T) {
		mixed := []models.Record{
			rec("STYLE", "A1", "PRICE_CS", "call for price"),
			rec("STYLE", "B2", "PRICE_CS", "25"),
		}
		out := Apply(mixed, []Filter{{Field: "PRICE_CS", Op: OpGTE, Value: "0"}})
		require.Len(t, out, 1)
		assert.Equal(t, "B2", out[0].Style())

		// Unparseable filter value excludes everything.
		out = Apply(mixed, []Filter{{Field: "PRICE_CS", Op: OpLT, Value: "cheap"}})
		assert.Empty(t, out)
	})

	t.Run("unknown operator matches", func(t *testing.T) {
		out := Apply(records, []Filter{{Field: "STYLE", Op: "regex", Value: "zzz"}})
		assert.Len(t, out, 2)
	})

	t.Run("no filters returns input unchanged", func(t *testing.T) {
		assert.Equal(t, records, Apply(records, nil))
	})
}

func TestSort(t *testing.T) {
	t.Run("numeric values sort numerically", func(t *testing.T) {
		records := []models.Record{
			rec("STYLE", "A", "PRICE_CS", "10"),
			rec("STYLE", "B", "PRICE_CS", "2"),
			rec("STYLE", "C", "PRICE_CS", "30"),
		}
		out := Sort(records, "PRICE_CS", false)
		assert.Equal(t, []string{"2", "10", "30"}, []string{
			out[0]["PRICE_CS"], out[1]["PRICE_CS"], out[2]["PRICE_CS"],
		})
	})

	t.Run("descending reverses the order", func(t *testing.T) {
		records := []models.Record{
			rec("PRICE_CS", "10"),
			rec("PRICE_CS", "2"),
		}
		out := Sort(records, "PRICE_CS", true)
		assert.Equal(t, "10", out[0]["PRICE_CS"])
	})

	t.Run("mixed values fall back to case-insensitive strings", func(t *testing.T) {
		records := []models.Record{
			rec("DESC", "zebra"),
			rec("DESC", "10"),
			rec("DESC", "Apple"),
		}
		out := Sort(records, "DESC", false)
		assert.Equal(t, "10", out[0]["DESC"])
		assert.Equal(t, "Apple", out[1]["DESC"])
		assert.Equal(t, "zebra", out[2]["DESC"])
	})

	t.Run("ties keep input order", func(t *testing.T) {
		records := []models.Record{
			rec("STYLE", "first", "CATEGORY", "x"),
			rec("STYLE", "second", "CATEGORY", "x"),
			rec("STYLE", "third", "CATEGORY", "x"),
		}
		out := Sort(records, "CATEGORY", false)
		assert.Equal(t, "first", out[0].Style())
		assert.Equal(t, "second", out[1].Style())
		assert.Equal(t, "third", out[2].Style())
	})

	t.Run("input is not mutated", func(t *testing.T) {
		records := []models.Record{
			rec("PRICE_CS", "10"),
			rec("PRICE_CS", "2"),
		}
		Sort(records, "PRICE_CS", false)
		assert.Equal(t, "10", records[0]["PRICE_CS"])
	})
}

func TestGroup(t *testing.T) {
	records := []models.Record{
		rec("STYLE", "A1", "CATEGORY", "Wreaths"),
		rec("STYLE", "B2", "CATEGORY", "Lights"),
		rec("STYLE", "C3", "CATEGORY", "Wreaths"),
		rec("STYLE", "D4"),
	}

	t.Run("partitions are exhaustive and disjoint", func(t *testing.T) {
		groups := Group(records, "CATEGORY")
		total := 0
		seen := map[string]bool{}
		for _, members := range groups {
			for _, r := range members {
				assert.False(t, seen[r.Style()], "record %s in more than one group", r.Style())
				seen[r.Style()] = true
				total++
			}
		}
		assert.Equal(t, len(records), total)
	})

	t.Run("absent value groups under Unknown", func(t *testing.T) {
		groups := Group(records, "CATEGORY")
		require.Len(t, groups[GroupUnknown], 1)
		assert.Equal(t, "D4", groups[GroupUnknown][0].Style())
	})

	t.Run("relative order within a group is preserved", func(t *testing.T) {
		groups := Group(records, "CATEGORY")
		wreaths := groups["Wreaths"]
		require.Len(t, wreaths, 2)
		assert.Equal(t, "A1", wreaths[0].Style())
		assert.Equal(t, "C3", wreaths[1].Style())
	})

	t.Run("keys come back sorted", func(t *testing.T) {
		groups := Group(records, "CATEGORY")
		assert.Equal(t, []string{"Lights", GroupUnknown, "Wreaths"}, GroupKeys(groups))
	})
}

func TestSearch(t *testing.T) {
	records := []models.Record{
		rec("STYLE", "A1", "DESC", "Red Wreath", "UPC_SKU_2", "012345"),
		rec("STYLE", "B2", "DESC", "Gold Star", "UPC_SKU_2", "067890"),
	}

	t.Run("matches style, description, and UPC", func(t *testing.T) {
		assert.Len(t, Search(records, "a1"), 1)
		assert.Len(t, Search(records, "WREATH"), 1)
		assert.Len(t, Search(records, "678"), 1)
	})

	t.Run("empty term matches everything", func(t *testing.T) {
		assert.Len(t, Search(records, ""), 2)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, Search(records, "snowman"))
	})
}

func TestParseFilter(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f, err := ParseFilter("PRICE_CS:gt:15")
		require.NoError(t, err)
		assert.Equal(t, Filter{Field: "PRICE_CS", Op: OpGT, Value: "15"}, f)
	})

	t.Run("value may contain colons", func(t *testing.T) {
		f, err := ParseFilter("DESC:contains:12:30")
		require.NoError(t, err)
		assert.Equal(t, "12:30", f.Value)
	})

	t.Run("bad operator", func(t *testing.T) {
		_, err := ParseFilter("PRICE_CS:near:15")
		assert.Error(t, err)
	})

	t.Run("missing parts", func(t *testing.T) {
		_, err := ParseFilter("PRICE_CS:gt")
		assert.Error(t, err)
	})
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.50", FormatPrice("10.5"))
	assert.Equal(t, "3.00", FormatPrice("3"))
	assert.Equal(t, "0.00", FormatPrice("n/a"))
	assert.Equal(t, "0.00", FormatPrice(""))
}
