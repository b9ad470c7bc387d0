package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"avquoter/config"
	"avquoter/services"
)

var generators = map[string]func(services.ProposalData) ([]byte, error){
	"docx": services.GenerateDOCX,
	"pdf":  services.GeneratePDF,
	"xlsx": services.GenerateBOMExcel,
}

type generateOptions struct {
	client    string
	mode      string
	roomsFile string
	rooms     []string
	packages  []string
	formats   []string
	outDir    string
	pricelist string
	signatory string
}

// NewGenerateCommand builds proposals from the command line:
//
//	avquoter generate --client "Acme" --mode fitout --room "Boardroom, 7.5" --format docx,pdf
func NewGenerateCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a proposal document without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := runGenerate(cmd, cfg, logger, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), services.UserMessage(err))
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.client, "client", "", "client name")
	f.StringVar(&opts.mode, "mode", string(services.ModePartner), "project scope: partner or fitout")
	f.StringVar(&opts.roomsFile, "rooms", "", `.csv or .xlsx room schedule, or a file of "Name, Distance" lines ("-" for stdin)`)
	f.StringArrayVar(&opts.rooms, "room", nil, `a "Name, Distance" room (repeatable)`)
	f.StringArrayVar(&opts.packages, "package", nil, `a "Name=Package" room priced from a named tier (repeatable)`)
	f.StringSliceVar(&opts.formats, "format", []string{"docx"}, "output formats: docx, pdf, xlsx")
	f.StringVar(&opts.outDir, "out", cfg.OutputDir, "output directory")
	f.StringVar(&opts.pricelist, "pricelist", cfg.Pricelist, "price list workbook (default: built-in catalog)")
	f.StringVar(&opts.signatory, "signatory", cfg.Signatory, "name signed at the end of the proposal")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger, opts generateOptions) ([]string, error) {
	if strings.TrimSpace(opts.client) == "" {
		return nil, services.ErrMissingClient
	}
	mode, err := services.ParseMode(opts.mode)
	if err != nil {
		return nil, err
	}
	for _, format := range opts.formats {
		if _, ok := generators[format]; !ok {
			return nil, fmt.Errorf("unknown format %q (want docx, pdf or xlsx)", format)
		}
	}

	cat, err := loadCatalog(opts.pricelist, cfg, logger)
	if err != nil {
		return nil, err
	}

	inputs, err := collectRoomInputs(cmd, opts)
	if err != nil {
		return nil, err
	}
	// A package room sits at its tier's ceiling unless told otherwise.
	for i, in := range inputs {
		if in.Package == "" || in.Distance != 0 {
			continue
		}
		if t, err := cat.Tier(in.Package, mode); err == nil {
			inputs[i].Distance = t.MaxDistance
		}
	}

	rooms, roomErrs := services.BuildRooms(cat, mode, inputs)
	for _, re := range roomErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped room %q: %s\n", re.Input.Name, services.UserMessage(re.Err))
	}

	ts := now()
	data, err := services.BuildProposal(cat, opts.client, mode, rooms, ts, opts.signatory)
	if err != nil {
		return nil, err
	}

	suffix := services.NewFileSuffix()
	var paths []string
	for _, format := range opts.formats {
		content, err := generators[format](data)
		if err != nil {
			return paths, fmt.Errorf("generate %s: %w", format, err)
		}
		path, err := services.SaveProposal(opts.outDir, services.ProposalFilename(data.Client, mode, ts, suffix, format), content)
		if err != nil {
			return paths, err
		}
		logger.Info().Str("path", path).Int("rooms", len(data.Rooms)).
			Str("total", services.FormatWholeMoney(data.Totals.GrandTotal)).
			Msg("proposal saved")
		paths = append(paths, path)
	}
	return paths, nil
}

// collectRoomInputs merges the --rooms file, --room and --package flags. A
// .csv or .xlsx --rooms file is read as a room schedule.
// Unparseable lines are reported on stderr and skipped.
func collectRoomInputs(cmd *cobra.Command, opts generateOptions) ([]services.RoomInput, error) {
	var text strings.Builder
	var inputs []services.RoomInput
	var skipped []services.SkippedLine
	if services.IsRoomFile(opts.roomsFile) {
		f, err := os.Open(opts.roomsFile)
		if err != nil {
			return nil, fmt.Errorf("open rooms file: %w", err)
		}
		defer f.Close()
		inputs, skipped, err = services.ParseRoomFile(f, opts.roomsFile)
		if err != nil {
			return nil, err
		}
	} else if opts.roomsFile != "" {
		var r io.Reader
		if opts.roomsFile == "-" {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(opts.roomsFile)
			if err != nil {
				return nil, fmt.Errorf("open rooms file: %w", err)
			}
			defer f.Close()
			r = f
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read rooms: %w", err)
		}
		text.Write(b)
		text.WriteString("\n")
	}
	for _, room := range opts.rooms {
		text.WriteString(room)
		text.WriteString("\n")
	}

	lineInputs, lineSkipped := services.ParseRoomLines(text.String())
	inputs = append(inputs, lineInputs...)
	skipped = append(skipped, lineSkipped...)
	for _, s := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped line %d %q: %s\n", s.Line, s.Text, s.Reason)
	}

	for _, p := range opts.packages {
		name, pkg, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(pkg) == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped package room %q: want Name=Package\n", p)
			continue
		}
		inputs = append(inputs, services.RoomInput{Name: strings.TrimSpace(name), Package: strings.TrimSpace(pkg)})
	}
	return inputs, nil
}
