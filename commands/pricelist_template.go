package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"avquoter/config"
	"avquoter/services"
)

// NewPricelistTemplateCommand writes master_pricelist.xlsx filled with the
// current catalog so it can be edited and loaded back with --pricelist.
func NewPricelistTemplateCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		out       string
		pricelist string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "pricelist-template",
		Short: "Write an editable " + services.PricelistFilename,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(pricelist, cfg, logger)
			if err != nil {
				return err
			}
			content, err := services.GeneratePricelistTemplate(cat)
			if err != nil {
				return err
			}

			if info, err := os.Stat(out); err == nil && info.IsDir() {
				out = filepath.Join(out, services.PricelistFilename)
			}
			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", out)
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return err
			}

			logger.Info().Str("path", out).Str("size", humanize.Bytes(uint64(len(content)))).Msg("price list written")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&out, "out", services.PricelistFilename, "file or directory to write")
	cmd.Flags().StringVar(&pricelist, "pricelist", "", "start from this price list instead of the built-in catalog")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
