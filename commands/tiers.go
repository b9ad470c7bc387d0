package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"avquoter/config"
	"avquoter/services"
)

// NewTiersCommand lists the tiers of a mode with their per-room costs.
func NewTiersCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		mode      string
		pricelist string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "List room tiers and their costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := services.ParseMode(mode)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(pricelist, cfg, logger)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Options(m))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "%s\n", m.Label())
			fmt.Fprintln(w, "Tier\tRange\tUpfront\tManaged Service\tYear 1\t")
			options := cat.Options(m)
			for i, t := range cat.Tiers(m) {
				c := services.CalcRoomCosts(t)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					t.Name,
					fmt.Sprintf("%gm - %gm", options[i].MinDistance, options[i].MaxDistance),
					services.FormatMoney(c.Upfront),
					services.FormatMoney(c.ManagedService),
					services.FormatMoney(c.Year1),
				)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&mode, "mode", string(services.ModePartner), "project scope: partner or fitout")
	cmd.Flags().StringVar(&pricelist, "pricelist", cfg.Pricelist, "price list workbook (default: built-in catalog)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print dropdown options as JSON")
	return cmd
}
