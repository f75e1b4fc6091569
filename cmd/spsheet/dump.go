package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TsubasaBE/go-spsheet"
	"github.com/TsubasaBE/go-spsheet/address"
	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/internal/config"
)

type sheetDump struct {
	Name  string     `yaml:"name" json:"name"`
	Cells []cellDump `yaml:"cells" json:"cells"`
}

type cellDump struct {
	Ref    string `yaml:"ref" json:"ref"`
	Type   string `yaml:"type" json:"type"`
	Value  any    `yaml:"value" json:"value"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// Display is the rendered text of a date cell with a date format.
	Display string `yaml:"display,omitempty" json:"display,omitempty"`
}

func newDumpCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the sheets and cells of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := spsheet.Open(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			logger.Debug("dumping workbook", "path", args[0], "sheets", b.Len(), "format", format)
			return writeDump(cmd.OutOrStdout(), dumpBook(b), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", cfg.DumpFormat, "Output format: yaml or json")
	return cmd
}

func dumpBook(b *book.Book) []sheetDump {
	out := make([]sheetDump, 0, b.Len())
	for _, s := range b.Sheets() {
		sd := sheetDump{Name: s.Name, Cells: []cellDump{}}
		for pos, c := range s.Cells() {
			sd.Cells = append(sd.Cells, dumpCell(pos, c))
		}
		out = append(out, sd)
	}
	return out
}

func dumpCell(pos book.Position, c *book.Cell) cellDump {
	d := cellDump{Ref: address.CellName(pos.Col, pos.Row), Format: c.Style.Format()}
	switch v := c.V.(type) {
	case string:
		d.Type, d.Value = "string", v
	case float64:
		d.Type, d.Value = "float", v
	case book.Currency:
		d.Type, d.Value = "currency", float64(v)
	case time.Time:
		d.Type, d.Value = "date", v.Format(time.RFC3339)
		if s, ok := c.FormattedValue(); ok {
			d.Display = s
		}
	default:
		d.Type, d.Value = fmt.Sprintf("%T", v), fmt.Sprint(v)
	}
	return d
}

func writeDump(w io.Writer, sheets []sheetDump, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sheets); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(sheets); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
}
