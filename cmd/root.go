package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/order"
)

var (
	dataDir  string
	stateDir string
	baseURL  string
)

var rootCmd = &cobra.Command{
	Use:   "holidaybasics",
	Short: "Browse product catalogs and build CSV orders",
	Long: `Holiday Basics is a catalog browser and order builder. It loads product
CSVs, filters/sorts/groups them, tracks per-customer order quantities, and
exports CSV orders. Customer mode serves a restricted, password-gated
product subset from an encoded link.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory or URL holding catalogs.json, catalog CSVs, and customers/")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultStateDir(), "directory saved orders are kept in")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "https://holidaybasics.example.com/order.html", "base URL customer links are built against")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(linkCmd)
}

func initConfig() {
	_ = godotenv.Load() // .env is optional

	if v := os.Getenv("HB_DATA_DIR"); v != "" {
		dataDir = v
	}
	if v := os.Getenv("HB_STATE_DIR"); v != "" {
		stateDir = v
	}
	if v := os.Getenv("HB_BASE_URL"); v != "" {
		baseURL = v
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".holidaybasics"
	}
	return filepath.Join(home, ".holidaybasics")
}

// loadSources reads the catalog registry; a missing registry is not fatal
// because a bare CSV path can still be browsed.
func loadSources() []catalog.Source {
	sources, err := catalog.LoadSources(dataDir)
	if err != nil {
		log.Printf("No catalog registry loaded: %v", err)
		return nil
	}
	return sources
}

// resolveSource picks a catalog by id, falling back to the first
// registered source when id is empty.
func resolveSource(sources []catalog.Source, id string) (catalog.Source, error) {
	if id == "" {
		if len(sources) == 0 {
			return catalog.Source{}, fmt.Errorf("no catalogs configured; pass --catalog or add catalogs.json to %s", dataDir)
		}
		return sources[0], nil
	}
	src, found := catalog.FindSource(sources, id)
	if !found {
		return catalog.Source{}, fmt.Errorf("unknown catalog %q", id)
	}
	return src, nil
}

func newStore() (*order.FileStore, error) {
	store, err := order.NewFileStore(stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}
	return store, nil
}
