package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"privat-rates/internal/app"
	"privat-rates/pkg/config"
	"privat-rates/pkg/logger"
	"privat-rates/pkg/render"

	"github.com/urfave/cli"
)

func newCLI() *cli.App {
	a := cli.NewApp()
	a.Name = "rates"
	a.Usage = "Get EUR and USD exchange rates from PrivatBank API for the last days"
	a.ArgsUsage = "<days>"
	a.HideVersion = true
	a.Flags = rateFlags()
	a.Action = fetchAction

	a.Commands = []cli.Command{
		{
			Name:      "fetch",
			Usage:     "Print exchange rates for the last <days> days",
			ArgsUsage: "<days>",
			Flags:     rateFlags(),
			Action:    fetchAction,
		},
		{
			Name:      "watch",
			Usage:     "Print exchange rates now and then on the configured cron schedule",
			ArgsUsage: "<days>",
			Flags: append(rateFlags(), cli.StringFlag{
				Name:  "schedule",
				Usage: "cron schedule, overrides watch.schedule",
			}),
			Action: watchAction,
		},
		{
			Name:   "serve",
			Usage:  "Serve exchange rates over HTTP",
			Flags:  append(rateFlags(), cli.StringFlag{Name: "port", Usage: "listen port, overrides app.port"}),
			Action: serveAction,
		},
	}

	return a
}

func rateFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Value: render.FormatText,
			Usage: "output format: " + strings.Join(render.Formats, ", "),
		},
		cli.BoolFlag{
			Name:  "insecure",
			Usage: "skip TLS certificate verification of the PrivatBank API",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of days fetched concurrently, overrides fetch.workers",
		},
	}
}

// valueFlags take their value as the next argument.
var valueFlags = map[string]bool{"output": true, "o": true, "workers": true, "schedule": true, "port": true}

// run executes the CLI. A trailing negative integer is passed through as
// <days> instead of being parsed as an unknown flag.
func run(a *cli.App, args []string) error {
	return a.Run(negativeDaysArgs(args))
}

func negativeDaysArgs(args []string) []string {
	n := len(args)
	if n < 2 {
		return args
	}

	last := args[n-1]
	if _, err := strconv.Atoi(last); err != nil || !strings.HasPrefix(last, "-") {
		return args
	}

	for _, arg := range args[1 : n-1] {
		if arg == "--" {
			return args
		}
	}
	if prev := args[n-2]; strings.HasPrefix(prev, "-") && !strings.Contains(prev, "=") && valueFlags[strings.TrimLeft(prev, "-")] {
		return args
	}

	rewritten := make([]string, 0, n+1)
	rewritten = append(rewritten, args[:n-1]...)
	return append(rewritten, "--", last)
}

func parseDays(c *cli.Context) (int, error) {
	if c.NArg() != 1 {
		return 0, cli.NewExitError("exactly one argument <days> is required", 2)
	}
	days, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, cli.NewExitError(fmt.Sprintf("argument days: invalid int value: %q", c.Args().First()), 2)
	}
	return days, nil
}

func setup(c *cli.Context) (*app.App, error) {
	if output := c.String("output"); !render.ValidFormat(output) {
		return nil, cli.NewExitError(fmt.Sprintf("unknown output format %q, expected one of %s", output, strings.Join(render.Formats, ", ")), 2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("Failed to load config: %v", err), 1)
	}

	if c.Bool("insecure") {
		cfg.PrivatBank.InsecureSkipVerify = true
	}
	if c.IsSet("workers") {
		cfg.Fetch.Workers = c.Int("workers")
	}
	if c.IsSet("schedule") {
		cfg.Watch.Schedule = c.String("schedule")
	}
	if c.IsSet("port") {
		cfg.App.Port = c.String("port")
	}

	log := logger.Init(cfg.Log.Level)
	log.Debugf("Starting %s...", cfg.App.Name)

	return app.New(cfg, log), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func fetchAction(c *cli.Context) error {
	days, err := parseDays(c)
	if err != nil {
		return err
	}

	a, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := a.Fetch(ctx, days, os.Stdout, c.String("output")); err != nil {
		a.Logger.WithError(err).Error("Failed to get exchange rates")
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func watchAction(c *cli.Context) error {
	days, err := parseDays(c)
	if err != nil {
		return err
	}

	a, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := a.Watch(ctx, days, os.Stdout, c.String("output")); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func serveAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := a.Serve(ctx); err != nil {
		a.Logger.WithError(err).Error("Server failed")
		return cli.NewExitError(err.Error(), 1)
	}
	a.Logger.Info("Gracefully shut down")
	return nil
}
