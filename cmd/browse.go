package cmd

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/tui"
)

var (
	browseCatalog  string
	browseLink     string
	browseCustomer string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Start the interactive catalog browser",
	Long: `Start the interactive catalog browser. Without flags the first
registered catalog is loaded. With --link or --customer the browser runs in
customer mode: the restricted catalog is served after the password gate.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseCatalog, "catalog", "c", "", "catalog id or CSV path to load")
	browseCmd.Flags().StringVar(&browseLink, "link", "", "customer link URL or cx token")
	browseCmd.Flags().StringVar(&browseCustomer, "customer", "", "named customer config to load")
	browseCmd.MarkFlagsMutuallyExclusive("link", "customer")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	sources := loadSources()
	store, err := newStore()
	if err != nil {
		return err
	}
	app := tui.NewApp(sources, catalog.NewLoader(), store, baseURL)

	var initial catalog.Source
	switch {
	case browseLink != "":
		token, err := customer.ExtractToken(browseLink)
		if err != nil {
			return err
		}
		cfg, err := customer.DecodeLink(token)
		if err != nil {
			return err
		}
		app.Session = customer.NewSession(cfg)

	case browseCustomer != "":
		cfg, err := customer.LoadConfig(dataDir, browseCustomer)
		if err != nil {
			return err
		}
		app.Session = customer.NewSession(cfg)

	default:
		if browseCatalog != "" || len(sources) > 0 {
			initial, err = resolveSource(sources, browseCatalog)
			if err != nil {
				return err
			}
		}
	}

	p := tea.NewProgram(
		tui.NewModel(app, initial),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running browser: %v", err)
	}

	if app.CustomerMode() && app.Session.State() != customer.StateAuthenticated {
		fmt.Println("Session ended before login.")
	}
	return nil
}
