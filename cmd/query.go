package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

var (
	queryCatalog string
	queryFilters []string
	querySearch  string
	querySort    string
	queryDesc    bool
	queryGroup   string
	queryCount   bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter, sort, and group a catalog from the command line",
	Long: `Load a catalog and print the records matching the given filters.
Filters take the form FIELD:OP:VALUE with OP one of contains, equals,
starts, gt, lt, gte, lte, and are combined with AND.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryCatalog, "catalog", "c", "", "catalog id or CSV path")
	queryCmd.Flags().StringArrayVarP(&queryFilters, "filter", "f", nil, "filter as FIELD:OP:VALUE (repeatable)")
	queryCmd.Flags().StringVarP(&querySearch, "search", "s", "", "free-text search over style, description, and UPC")
	queryCmd.Flags().StringVar(&querySort, "sort", "", "field to sort by")
	queryCmd.Flags().BoolVar(&queryDesc, "desc", false, "sort descending")
	queryCmd.Flags().StringVarP(&queryGroup, "group", "g", "", "field to group by")
	queryCmd.Flags().BoolVar(&queryCount, "count", false, "print only the match count")
}

func runQuery(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(loadSources(), queryCatalog)
	if err != nil {
		return err
	}

	records, err := catalog.NewLoader().Load(context.Background(), src)
	if err != nil {
		return err
	}

	var filters []query.Filter
	for _, raw := range queryFilters {
		f, err := query.ParseFilter(raw)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}

	records = query.Apply(records, filters)
	records = query.Search(records, querySearch)
	if querySort != "" {
		records = query.Sort(records, querySort, queryDesc)
	}

	if queryCount {
		fmt.Println(len(records))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer w.Flush()

	if queryGroup != "" {
		groups := query.Group(records, queryGroup)
		for _, key := range query.GroupKeys(groups) {
			fmt.Fprintf(w, "%s (%d)\n", key, len(groups[key]))
			printRecords(w, groups[key])
		}
	} else {
		printRecords(w, records)
	}
	fmt.Fprintf(w, "%d products\n", len(records))
	return nil
}

func printRecords(w *tabwriter.Writer, records []models.Record) {
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t$%s\tstock %s\n",
			r.Style(),
			r.Desc(),
			query.FormatPrice(r.Get(models.FieldPriceCase)),
			r.Get(models.FieldQOH),
		)
	}
}
