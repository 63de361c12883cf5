package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/fxcompare/internal/api"
	"github.com/mtlprog/fxcompare/internal/calculator"
	"github.com/mtlprog/fxcompare/internal/domain"
	"github.com/mtlprog/fxcompare/internal/export"
	"github.com/mtlprog/fxcompare/internal/profile"
	"github.com/mtlprog/fxcompare/internal/ratesource"
)

// inputFlags maps each comparison flag to its RawInputs field.
var inputFlags = []struct {
	name  string
	usage string
	field func(*calculator.RawInputs) *string
	value func(domain.Inputs) float64
}{
	{"amount", "EUR to convert", func(r *calculator.RawInputs) *string { return &r.Amount }, func(in domain.Inputs) float64 { return in.Amount }},
	{"reference", "reference rate, local per EUR", func(r *calculator.RawInputs) *string { return &r.Reference }, func(in domain.Inputs) float64 { return in.Reference }},
	{"street", "exchange office rate, local per EUR", func(r *calculator.RawInputs) *string { return &r.Street }, func(in domain.Inputs) float64 { return in.Street }},
	{"direct", "card payment rate, local per EUR", func(r *calculator.RawInputs) *string { return &r.Direct }, func(in domain.Inputs) float64 { return in.Direct }},
	{"cross", "cross rate, USD per EUR", func(r *calculator.RawInputs) *string { return &r.Cross }, func(in domain.Inputs) float64 { return in.Cross }},
	{"secondary", "secondary rate, local per USD", func(r *calculator.RawInputs) *string { return &r.Secondary }, func(in domain.Inputs) float64 { return in.Secondary }},
	{"transfer-fee", "transfer fee, percent", func(r *calculator.RawInputs) *string { return &r.TransferFeePct }, func(in domain.Inputs) float64 { return in.TransferPct }},
	{"cash-fee", "cash withdrawal fee, percent", func(r *calculator.RawInputs) *string { return &r.CashFeePct }, func(in domain.Inputs) float64 { return in.CashPct }},
	{"cash-fixed", "cash withdrawal fixed fee, EUR", func(r *calculator.RawInputs) *string { return &r.CashFeeFixed }, func(in domain.Inputs) float64 { return in.CashFixed }},
}

func compareCommand(rt *runtime) *cli.Command {
	flags := make([]cli.Flag, 0, len(inputFlags))
	for _, f := range inputFlags {
		flags = append(flags, &cli.StringFlag{Name: f.name, Usage: f.usage})
	}

	return &cli.Command{
		Name:  "compare",
		Usage: "compare the three conversion paths; omitted values keep their saved setting",
		Flags: flags,
		Action: func(c *cli.Context) error {
			stored := rt.svc.Settings().Inputs
			var raw calculator.RawInputs
			for _, f := range inputFlags {
				v := strconv.FormatFloat(f.value(stored), 'f', -1, 64)
				if c.IsSet(f.name) {
					v = c.String(f.name)
				}
				*f.field(&raw) = v
			}

			cmp, err := rt.svc.Calculate(raw)
			if err != nil {
				return err
			}
			printComparison(c.App.Writer, rt.svc.ActiveProfile(), cmp)
			return nil
		},
	}
}

func profilesCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "list and manage country profiles",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every profile, built-ins first",
				Action: func(c *cli.Context) error {
					printProfiles(c.App.Writer, rt.svc.Profiles(), rt.svc.ActiveProfile().Key)
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "add or replace a custom profile",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "flag", Required: true, Usage: "flag glyph"},
					&cli.StringFlag{Name: "currency", Required: true, Usage: "currency code"},
					&cli.StringFlag{Name: "symbol", Required: true, Usage: "currency symbol"},
					&cli.StringFlag{Name: "rate", Required: true, Usage: "reference rate, local per EUR"},
					&cli.StringFlag{Name: "city"},
					&cli.StringFlag{Name: "currency-name"},
					&cli.StringFlag{Name: "bank", Usage: "reference institution short name"},
					&cli.StringFlag{Name: "bank-full", Usage: "reference institution full name"},
					&cli.StringFlag{Name: "street-exchange", Usage: "exchange office label"},
				},
				Action: func(c *cli.Context) error {
					key := c.Args().First()
					if key == "" {
						key = c.String("name")
					}
					p, err := rt.svc.AddProfile(key, profile.ProfileInput{
						Name:           c.String("name"),
						Flag:           c.String("flag"),
						Currency:       c.String("currency"),
						Symbol:         c.String("symbol"),
						Rate:           c.String("rate"),
						City:           c.String("city"),
						CurrencyName:   c.String("currency-name"),
						Bank:           c.String("bank"),
						BankFull:       c.String("bank-full"),
						StreetExchange: c.String("street-exchange"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "added %s: %s\n", p.Key, p.Label())
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a custom profile",
				ArgsUsage: "KEY",
				Action: func(c *cli.Context) error {
					key := c.Args().First()
					if key == "" {
						return errors.New("profile key required")
					}
					if err := rt.svc.DeleteProfile(key); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "active profile: %s\n", rt.svc.ActiveProfile().Label())
					return nil
				},
			},
			{
				Name:      "use",
				Usage:     "switch the active profile and load its default rates",
				ArgsUsage: "KEY",
				Action: func(c *cli.Context) error {
					key := c.Args().First()
					if key == "" {
						return errors.New("profile key required")
					}
					p, err := rt.svc.SwitchProfile(key)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "active profile: %s\n", p.Label())
					return nil
				},
			},
		},
	}
}

func fetchCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "fetch current rates for the active profile",
		Action: func(c *cli.Context) error {
			out, err := rt.svc.FetchRates(c.Context)
			for _, f := range out.Failures {
				fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", f.Source, f.Error)
			}
			if err != nil {
				return err
			}
			for _, line := range out.Applied {
				fmt.Fprintln(c.App.Writer, line)
			}
			if out.Comparison != nil {
				fmt.Fprintln(c.App.Writer)
				printComparison(c.App.Writer, rt.svc.ActiveProfile(), *out.Comparison)
			}
			return nil
		},
	}
}

func settingsCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "show or change stored settings",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the settings file contents",
				Action: func(c *cli.Context) error {
					data, err := json.MarshalIndent(rt.svc.Settings(), "", "  ")
					if err != nil {
						return fmt.Errorf("encoding settings: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "%s\n# %s\n", data, rt.store.Path())
					return nil
				},
			},
			{
				Name:      "theme",
				Usage:     "set the theme, or toggle it when no value is given",
				ArgsUsage: "[dark|light]",
				Action: func(c *cli.Context) error {
					theme := domain.Theme(c.Args().First())
					var err error
					if theme == "" {
						theme, err = rt.svc.ToggleTheme()
					} else {
						err = rt.svc.SetTheme(theme)
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "theme: %s\n", theme)
					return nil
				},
			},
			{
				Name:  "dates",
				Usage: "record when each rate was observed",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "reference"},
					&cli.StringFlag{Name: "direct"},
					&cli.StringFlag{Name: "transfer"},
					&cli.StringFlag{Name: "cash"},
				},
				Action: func(c *cli.Context) error {
					d := rt.svc.Settings().Dates
					set := func(flag string, dst *string) {
						if c.IsSet(flag) {
							*dst = c.String(flag)
						}
					}
					set("reference", &d.ReferenceDate)
					set("direct", &d.DirectDate)
					set("transfer", &d.TransferDate)
					set("cash", &d.CashDate)
					if err := rt.svc.SetDates(d); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "reference %s, direct %s, transfer %s, cash %s\n",
						d.ReferenceDate, d.DirectDate, d.TransferDate, d.CashDate)
					return nil
				},
			},
		},
	}
}

func exportCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export the current comparison to a spreadsheet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Usage: "write a workbook to `FILE`"},
			&cli.BoolFlag{Name: "sheet", Usage: "write to the configured Google spreadsheet"},
			&cli.BoolFlag{Name: "history", Usage: "with --sheet, also append a row to the HISTORY sheet"},
		},
		Action: func(c *cli.Context) error {
			if c.String("xlsx") == "" && !c.Bool("sheet") {
				return errors.New("one of --xlsx or --sheet is required")
			}

			cmp, err := rt.svc.Current()
			if err != nil {
				return err
			}
			report := export.BuildReport(rt.svc.ActiveProfile(), cmp, rt.svc.Settings().Dates)

			if path := c.String("xlsx"); path != "" {
				if err := export.NewXLSXWriter(path).Write(c.Context, report); err != nil {
					return fmt.Errorf("exporting to %s: %w", path, err)
				}
				fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
			}

			if c.Bool("sheet") {
				writer, err := rt.sheetsWriter(c.Context)
				if err != nil {
					return err
				}
				if err := writer.Write(c.Context, report); err != nil {
					return fmt.Errorf("exporting to Google Sheets: %w", err)
				}
				if c.Bool("history") {
					if err := writer.AppendHistory(c.Context, report); err != nil {
						return fmt.Errorf("appending history: %w", err)
					}
				}
				fmt.Fprintf(c.App.Writer, "wrote spreadsheet %s\n", rt.cfg.SpreadsheetID)
			}
			return nil
		},
	}
}

func (rt *runtime) sheetsWriter(ctx context.Context) (*export.SheetsWriter, error) {
	if !rt.cfg.SheetsEnabled() {
		return nil, errors.New("GOOGLE_CREDENTIALS_JSON and SPREADSHEET_ID must be set")
	}
	return export.NewSheetsWriter(ctx, rt.cfg.SpreadsheetID, rt.cfg.GoogleCredentialsJSON)
}

func serveCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the local JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (default: HTTP_PORT)"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			port := rt.cfg.HTTPPort
			if c.IsSet("port") {
				port = c.String("port")
			}

			svc := calculator.New(rt.store, ratesource.Cached(rt.fetcher, rt.cfg.FetchCacheTTL))
			limiter := api.NewFetchLimiter(rt.cfg.FetchMinInterval, rt.cfg.FetchBurst)

			var writer export.Writer
			if rt.cfg.SheetsEnabled() {
				sw, err := rt.sheetsWriter(ctx)
				if err != nil {
					return err
				}
				writer = sw
			} else {
				slog.Warn("Google Sheets not configured, export endpoint disabled")
			}

			srv := api.NewServer(port, svc, limiter, writer)
			slog.Info("HTTP server listening", "port", port, "settings", rt.store.Path())
			return runServer(ctx, srv, svc)
		},
	}
}

// runServer serves until ctx is done, then shuts down and flushes settings.
func runServer(ctx context.Context, srv *http.Server, svc *calculator.Service) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	if err := svc.Save(); err != nil {
		slog.Warn("failed to save settings on shutdown", "error", err)
	}
	slog.Info("shutdown complete")
	return nil
}
