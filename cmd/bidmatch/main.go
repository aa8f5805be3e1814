// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/bidmatch"
	"github.com/poiesic/bidmatch/acquire"
	"github.com/poiesic/bidmatch/config"
	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/export"
	"github.com/poiesic/bidmatch/notify"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bidmatch",
		Usage: "Government tender tracker and bid-match recommender",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "refresh",
				Usage:  "Fetch tender listings from all portals and replace the stored snapshot",
				Action: refreshCommand,
			},
			{
				Name:   "list",
				Usage:  "Print the stored tender snapshot",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Write the listing as CSV instead of a table",
					},
					&cli.BoolFlag{
						Name:  "by-deadline",
						Usage: "Order by deadline, earliest first; drops tenders with unknown deadlines",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Only show tenders from one portal (cppp, gem)",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Score stored tenders against a company profile",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Company profile text (defaults to matching.profile from config)",
					},
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Minimum match score, 0..1 (defaults to matching.threshold from config)",
						Value:   -1,
					},
					&cli.BoolFlag{
						Name:  "notify",
						Usage: "Send an alert for each match (email when SMTP is configured, log otherwise)",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export matches against a company profile as CSV",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Company profile text (defaults to matching.profile from config)",
					},
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Minimum match score, 0..1 (defaults to matching.threshold from config)",
						Value:   -1,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (defaults to stdout)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

func openTracker(c *cli.Context) (*bidmatch.Tracker, config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := []bidmatch.TrackerOption{
		bidmatch.WithMaxFeatures(cfg.Matching.MaxFeatures),
	}
	if cfg.Storage.InMemory {
		opts = append(opts, bidmatch.WithInMemory())
	}

	var sources []acquire.Source
	if cfg.Sources.CPPP {
		source, err := acquire.NewCPPPSource()
		if err != nil {
			return nil, config.Config{}, err
		}
		sources = append(sources, source)
	}
	if cfg.Sources.GeM {
		source, err := acquire.NewGeMSource()
		if err != nil {
			return nil, config.Config{}, err
		}
		sources = append(sources, source)
	}
	if len(sources) > 0 {
		opts = append(opts, bidmatch.WithSources(sources...))
	}

	tracker, err := bidmatch.NewTracker(cfg.Storage.Path, opts...)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to open tender store: %w", err)
	}
	return tracker, cfg, nil
}

func refreshCommand(c *cli.Context) error {
	tracker, _, err := openTracker(c)
	if err != nil {
		return err
	}
	defer tracker.Close()

	count, err := tracker.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d tenders\n", count)
	return nil
}

func listCommand(c *cli.Context) error {
	tracker, _, err := openTracker(c)
	if err != nil {
		return err
	}
	defer tracker.Close()

	tenders, err := tracker.Tenders(context.Background())
	if err != nil {
		return err
	}

	if tag := c.String("source"); tag != "" {
		source, err := core.ParseSourceType(tag)
		if err != nil {
			return fmt.Errorf("invalid --source %q: %w", tag, err)
		}
		filtered := tenders[:0]
		for _, tender := range tenders {
			if tender.Source == source {
				filtered = append(filtered, tender)
			}
		}
		tenders = filtered
	}

	if c.Bool("by-deadline") {
		tenders = core.SortByDeadline(tenders)
	}

	if c.Bool("csv") {
		return export.WriteTenders(os.Stdout, tenders)
	}

	for _, tender := range tenders {
		fmt.Printf("%-16s %-10s %-12s %s\n", tender.ID, tender.Source, tender.Deadline, tender.Title)
	}
	fmt.Fprintf(os.Stderr, "%d tenders\n", len(tenders))
	return nil
}

func matchCommand(c *cli.Context) error {
	tracker, cfg, err := openTracker(c)
	if err != nil {
		return err
	}
	defer tracker.Close()

	profile, threshold, err := matchParams(c, cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := tracker.Match(ctx, profile, threshold)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	for _, result := range results {
		fmt.Printf("%.4f  %-16s %s\n", result.Score, result.Tender.ID, result.Tender.Title)
	}
	fmt.Fprintf(os.Stderr, "%d matches at threshold %.2f\n", len(results), threshold)

	if c.Bool("notify") {
		return sendAlerts(ctx, cfg, results)
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	tracker, cfg, err := openTracker(c)
	if err != nil {
		return err
	}
	defer tracker.Close()

	profile, threshold, err := matchParams(c, cfg)
	if err != nil {
		return err
	}

	results, err := tracker.Match(context.Background(), profile, threshold)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteMatches(out, results); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d matches\n", len(results))
	return nil
}

func matchParams(c *cli.Context, cfg config.Config) (string, float64, error) {
	profile := c.String("profile")
	if profile == "" {
		profile = cfg.Matching.Profile
	}
	if strings.TrimSpace(profile) == "" {
		return "", 0, fmt.Errorf("a company profile is required: pass --profile or set matching.profile in the config")
	}

	threshold := c.Float64("threshold")
	if threshold < 0 {
		threshold = cfg.Matching.Threshold
	}
	return profile, threshold, nil
}

func sendAlerts(ctx context.Context, cfg config.Config, results []core.MatchResult) error {
	var notifier notify.Notifier
	if cfg.SMTP.Host != "" {
		smtpNotifier, err := notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			From:      cfg.SMTP.From,
			Password:  cfg.SMTP.Password,
			Recipient: cfg.SMTP.Recipient,
		})
		if err != nil {
			return err
		}
		notifier = smtpNotifier
	} else {
		notifier = notify.NewLogNotifier(nil)
	}

	for _, result := range results {
		if err := notifier.Notify(ctx, notify.NewMessage(result)); err != nil {
			return fmt.Errorf("alert for tender %s failed: %w", result.Tender.ID, err)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
