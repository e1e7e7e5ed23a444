package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/order"
)

var (
	exportCatalog  string
	exportCustomer string
	exportName     string
	exportID       string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved order as CSV",
	Long: `Export the saved order for an identity (a customer code, or the
default identity) as a CSV order file. Prices are resolved against the
catalog, so the catalog the order was built from must be reachable.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportCatalog, "catalog", "c", "", "catalog id or CSV path")
	exportCmd.Flags().StringVar(&exportCustomer, "customer", "", "customer code whose saved order to export")
	exportCmd.Flags().StringVar(&exportName, "name", "", "customer name for the export header")
	exportCmd.Flags().StringVar(&exportID, "id", "", "customer id for the export header")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", `output file ("-" for stdout, default order_<id>_<date>.csv)`)
}

func runExport(cmd *cobra.Command, args []string) error {
	var cfg *customer.Config
	if exportCustomer != "" {
		var err error
		cfg, err = customer.LoadConfig(dataDir, exportCustomer)
		if err != nil {
			return err
		}
		if exportCatalog == "" {
			exportCatalog = cfg.Catalog
		}
	}

	src, err := resolveSource(loadSources(), exportCatalog)
	if err != nil {
		return err
	}
	records, err := catalog.NewLoader().Load(context.Background(), src)
	if err != nil {
		return err
	}

	code := ""
	if cfg != nil {
		code = cfg.Code
		records = customer.NewSession(cfg).FilterAllowed(records)
		if exportName == "" {
			exportName = cfg.Name
		}
		if exportID == "" {
			exportID = cfg.Code
		}
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	ledger := order.NewLedger(code, store)
	restored, err := ledger.Restore(models.StyleSet(records))
	if err != nil {
		return err
	}
	if restored == 0 {
		return fmt.Errorf("no saved order for %s", order.Key(code))
	}

	out := os.Stdout
	filename := exportOut
	if filename == "" {
		id := exportID
		if id == "" {
			id = "N/A"
		}
		filename = order.ExportFilename(id, time.Now())
	}
	if filename != "-" {
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := order.Export(out, exportName, exportID, ledger, records); err != nil {
		return err
	}
	if filename != "-" {
		log.Printf("Exported %d items to %s", ledger.Len(), filename)
	}
	return nil
}
