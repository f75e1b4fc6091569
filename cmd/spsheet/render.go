package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/numfmt"
)

func newRenderCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "render --style FMT DATE",
		Short: "Render a date through a format code",
		Long: `Render a date through a format code.  DATE is a calendar date such as
2019-05-01 or an RFC 3339 date-time; a date-time without a zone is UTC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := book.Date(args[0], book.NewStyle(style))
			if err != nil {
				return err
			}
			s, ok := c.FormattedValue()
			if !ok {
				return fmt.Errorf("%q is not a date format", style)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "Format code, e.g. YYYY/MM/DD")
	_ = cmd.MarkFlagRequired("style")
	return cmd
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FMT",
		Short: "Show how a format code is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			style := book.NewStyle(args[0])
			if items, ok := style.DateItems(); ok {
				fmt.Fprintf(w, "date %s\n", numfmt.Pattern(items))
				for _, it := range items {
					if it.Token == numfmt.Literal {
						fmt.Fprintf(w, "  literal %s\n", strconv.Quote(it.Text))
						continue
					}
					fmt.Fprintf(w, "  item    %s\n", it.Directive())
				}
				return nil
			}
			if sections, ok := style.NumericSections(); ok {
				for i, sec := range sections {
					fmt.Fprintf(w, "numeric section %d: %s\n", i+1, describeSection(sec))
				}
				return nil
			}
			return fmt.Errorf("%q is neither a date nor a numeric format", args[0])
		},
	}
}

func describeSection(sec numfmt.Section) string {
	var parts []string
	switch sec.Color {
	case numfmt.Red:
		parts = append(parts, "color=red")
	case numfmt.Black:
		parts = append(parts, "color=black")
	}
	words := func(label string, ws []numfmt.Word) {
		for _, w := range ws {
			if w.Currency {
				parts = append(parts, label+"-currency="+strconv.Quote(w.Text))
			} else {
				parts = append(parts, label+"="+strconv.Quote(w.Text))
			}
		}
	}
	words("prefix", sec.Prefix)
	parts = append(parts, "digits="+strconv.Quote(sec.Digits))
	words("suffix", sec.Suffix)
	return strings.Join(parts, " ")
}
