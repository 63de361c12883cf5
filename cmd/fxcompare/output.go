package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mtlprog/fxcompare/internal/calculator"
	"github.com/mtlprog/fxcompare/internal/domain"
)

func money(v float64) string {
	return domain.FormatAmount(v, 2)
}

func printComparison(out io.Writer, p domain.Profile, c domain.Comparison) {
	fmt.Fprintf(out, "%s, %s EUR\n\n", p.Label(), money(c.Amount))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "PATH\tRECEIVED %s\tLOSS %%\tLOSS\t\n", p.Currency)
	fmt.Fprintf(tw, "Reference (%s)\t%s\t\t\t\n", p.Bank, money(c.Reference))
	for _, r := range c.Results {
		name := r.Path.Title()
		if r.Path == c.Winner {
			name = "* " + name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", name, money(r.Received), money(r.LossPercent), money(r.Loss))
	}
	tw.Flush()

	rec := calculator.Recommend(c, p)
	fmt.Fprintf(out, "\n%s: %s\n", rec.Title, rec.Detail)
}

func printProfiles(out io.Writer, profiles []domain.Profile, active string) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tKEY\tNAME\tCURRENCY\tORIGIN\tRATE API")
	for _, p := range profiles {
		mark := ""
		if p.Key == active {
			mark = "*"
		}
		api := ""
		if p.HasRateAPI() {
			api = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%s\n", mark, p.Key, p.Flag, p.Name, p.Currency, p.Origin, api)
	}
	tw.Flush()
}
