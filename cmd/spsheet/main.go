// Command spsheet converts, inspects and renders spreadsheet documents.
//
//	spsheet convert Book1.xlsx Book1.ods
//	spsheet dump Book1.ods --format json
//	spsheet render --style 'GGGE\年M\月D\日' 2019-05-01
//	spsheet tokens 'YYYY/MM/DD HH:MM'
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-spsheet"
	"github.com/TsubasaBE/go-spsheet/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "spsheet",
		Short:        "Convert and inspect .xlsx and .ods spreadsheets",
		Version:      spsheet.Version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newConvertCmd(logger),
		newDumpCmd(cfg, logger),
		newRenderCmd(),
		newTokensCmd(),
	)
	return root
}

func newConvertCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Read a spreadsheet and write it in the format named by OUT's extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if _, err := spsheet.FormatFromName(out); err != nil {
				return err
			}
			b, err := spsheet.Open(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}
			logger.Debug("read workbook", "path", in, "sheets", b.Len())
			if err := spsheet.Save(out, b); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logger.Info("converted", "from", in, "to", out, "sheets", b.Len())
			return nil
		},
	}
}
