package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

var (
	linkCatalog  string
	linkCode     string
	linkPassword string
	linkFilters  []string
	linkCopy     bool
	linkShowPass bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Generate and decode customer links",
}

var linkGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a password-gated customer link",
	Long: `Encode a restricted catalog view into a shareable link. The allowed
product set is the catalog after applying the given filters.`,
	RunE: runLinkGenerate,
}

var linkDecodeCmd = &cobra.Command{
	Use:   "decode <link-or-token>",
	Short: "Decode a customer link",
	Args:  cobra.ExactArgs(1),
	RunE:  runLinkDecode,
}

func init() {
	linkGenerateCmd.Flags().StringVarP(&linkCatalog, "catalog", "c", "", "catalog id the link serves")
	linkGenerateCmd.Flags().StringVar(&linkCode, "code", "", "customer code (required)")
	linkGenerateCmd.Flags().StringVar(&linkPassword, "password", "", "access password (required)")
	linkGenerateCmd.Flags().StringArrayVarP(&linkFilters, "filter", "f", nil, "filter as FIELD:OP:VALUE restricting the product set (repeatable)")
	linkGenerateCmd.Flags().BoolVar(&linkCopy, "copy", false, "copy the link to the clipboard")
	linkGenerateCmd.MarkFlagRequired("code")
	linkGenerateCmd.MarkFlagRequired("password")

	linkDecodeCmd.Flags().BoolVar(&linkShowPass, "show-password", false, "print the password instead of masking it")

	linkCmd.AddCommand(linkGenerateCmd)
	linkCmd.AddCommand(linkDecodeCmd)
}

func runLinkGenerate(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(loadSources(), linkCatalog)
	if err != nil {
		return err
	}
	records, err := catalog.NewLoader().Load(context.Background(), src)
	if err != nil {
		return err
	}

	var filters []query.Filter
	for _, raw := range linkFilters {
		f, err := query.ParseFilter(raw)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}
	records = query.Apply(records, filters)
	if len(records) == 0 {
		return fmt.Errorf("no products selected; loosen the filters")
	}

	cfg := &customer.Config{
		Code:          strings.ToUpper(linkCode),
		Password:      linkPassword,
		Catalog:       src.ID,
		AllowedStyles: models.Styles(records),
	}
	token, err := customer.EncodeLink(cfg)
	if err != nil {
		return err
	}

	link, tooLong := customer.BuildLinkURL(baseURL, token)
	fmt.Println(link)
	log.Printf("Config generated with %d products", len(cfg.AllowedStyles))
	if tooLong {
		log.Printf("WARNING: link exceeds %d characters and may be rejected by some transports", customer.MaxLinkLength)
	}

	if linkCopy {
		if err := clipboard.WriteAll(link); err != nil {
			return fmt.Errorf("failed to copy link: %w", err)
		}
		log.Printf("Customer link copied to clipboard")
	}
	return nil
}

func runLinkDecode(cmd *cobra.Command, args []string) error {
	token, err := customer.ExtractToken(args[0])
	if err != nil {
		return err
	}
	cfg, err := customer.DecodeLink(token)
	if err != nil {
		return err
	}

	password := strings.Repeat("*", len(cfg.Password))
	if linkShowPass {
		password = cfg.Password
	}

	fmt.Printf("Code:     %s\n", cfg.Code)
	fmt.Printf("Catalog:  %s\n", cfg.Catalog)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Products: %d\n", len(cfg.AllowedStyles))
	for _, style := range cfg.AllowedStyles {
		fmt.Printf("  %s\n", style)
	}
	return nil
}
