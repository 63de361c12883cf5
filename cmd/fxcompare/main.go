package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/fxcompare/internal/calculator"
	"github.com/mtlprog/fxcompare/internal/config"
	"github.com/mtlprog/fxcompare/internal/profile"
	"github.com/mtlprog/fxcompare/internal/ratesource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.LoadDotEnv()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runtime carries what every command needs once flags are parsed.
type runtime struct {
	cfg     config.Config
	store   *profile.Store
	fetcher *ratesource.Service
	svc     *calculator.Service
}

func newApp(stdout, stderr io.Writer) *cli.App {
	rt := &runtime{}

	return &cli.App{
		Name:      "fxcompare",
		Usage:     "compare ways of turning EUR into local currency",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "settings",
				Usage: "settings file (default: SETTINGS_PATH or settings.json next to the binary)",
			},
		},
		Before: func(c *cli.Context) error {
			return rt.init(c)
		},
		Commands: []*cli.Command{
			compareCommand(rt),
			profilesCommand(rt),
			fetchCommand(rt),
			settingsCommand(rt),
			exportCommand(rt),
			serveCommand(rt),
		},
	}
}

func (rt *runtime) init(c *cli.Context) error {
	rt.cfg = config.Load()
	if path := c.String("settings"); path != "" {
		rt.cfg.SettingsPath = path
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: rt.cfg.LogLevel})))

	rt.store = profile.Open(rt.cfg.SettingsPath)
	rt.fetcher = ratesource.NewService(map[string]ratesource.Integration{
		"georgia": ratesource.NewGeorgiaClient(rt.cfg.NBGURL, rt.cfg.RicoURL, rt.cfg.FrankfurterURL, rt.cfg.FetchTimeout),
	})
	rt.svc = calculator.New(rt.store, rt.fetcher)
	return nil
}
