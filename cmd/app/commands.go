package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/starford/peaklog/internal"
	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/export"
	"github.com/starford/peaklog/internal/models"
	"github.com/starford/peaklog/internal/sorter"
)

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// withEngine loads config, opens the engine with a stderr WARN logger and
// runs fn against it.
func withEngine(ctx context.Context, cmd *cli.Command, fn func(*internal.Engine) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	e, err := internal.Open(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

// userError keeps validation messages short on the command line.
func userError(err error) error {
	if !apperr.IsValidation(err) {
		return err
	}
	var msgs []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
	} else {
		msgs = append(msgs, err.Error())
	}
	return cli.Exit(strings.Join(msgs, "; "), 2)
}

func sortFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "sort",
		Usage: "Sort order: " + strings.Join(orderNames(), ", "),
		Value: string(sorter.ByDate),
	}
}

func orderNames() []string {
	names := make([]string, len(sorter.Orders))
	for i, o := range sorter.Orders {
		names[i] = string(o)
	}
	return names
}

func peaksCommand() *cli.Command {
	return &cli.Command{
		Name:  "peaks",
		Usage: "List catalog peak names",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				for _, name := range e.Service.PeakNames(ctx) {
					fmt.Fprintln(stdout, name)
				}
				return nil
			})
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Log a climb",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "peak", Usage: "Catalog peak name", Required: true},
			&cli.StringFlag{Name: "date", Usage: "Date climbed (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "notes", Usage: "Optional notes"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				entry, err := e.Service.Log(ctx, cmd.String("peak"), cmd.String("date"), cmd.String("notes"))
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(stdout, "Logged %s on %s\n", entry.PeakName, entry.DateClimbed)
				return nil
			})
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove every climb of a peak on a date",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "peak", Usage: "Catalog peak name", Required: true},
			&cli.StringFlag{Name: "date", Usage: "Date climbed (YYYY-MM-DD)", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				n, err := e.Service.Remove(ctx, cmd.String("peak"), cmd.String("date"))
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(stdout, "Removed %d climb(s)\n", n)
				return nil
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Show logged climbs",
		Flags: []cli.Flag{sortFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				entries, err := e.Service.List(ctx, cmd.String("sort"))
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				return printEntries(stdout, entries)
			})
		},
	}
}

func progressCommand() *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show distinct peaks climbed",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				p := e.Service.Progress(ctx)
				fmt.Fprintf(stdout, "%d of %d peaks climbed (%d%%)\n", p.ClimbedCount, p.TotalCount, p.Percent)
				return nil
			})
		},
	}
}

func mapCommand() *cli.Command {
	return &cli.Command{
		Name:  "map",
		Usage: "Show one marker per climbed peak",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				return printMarkers(stdout, e.Service.MapMarkers(ctx))
			})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the log to an .xlsx or .csv file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (.xlsx or .csv)", Required: true},
			sortFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.String("out")
			if _, err := export.FormatFor(out); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return withEngine(ctx, cmd, func(e *internal.Engine) error {
				entries, err := e.Service.List(ctx, cmd.String("sort"))
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				if err := export.WriteFile(out, entries); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Wrote %d climb(s) to %s\n", len(entries), out)
				return nil
			})
		},
	}
}

func printEntries(w io.Writer, entries []models.LogEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No climbs logged yet.")
		return err
	}
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPEAK\tRANK\tELEVATION\tRANGE\tNOTES")
	for _, e := range entries {
		p.Fprintf(tw, "%s\t%s\t%s\t%d ft\t%s\t%s\n",
			e.DateClimbed, e.PeakName, e.Rank, e.ElevationFeet, e.Range, e.Notes)
	}
	return tw.Flush()
}

func printMarkers(w io.Writer, markers []models.MapMarker) error {
	if len(markers) == 0 {
		_, err := fmt.Fprintln(w, "No climbs logged yet.")
		return err
	}
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PEAK\tELEVATION\tLAT\tLNG\tDATES")
	for _, m := range markers {
		dates := make([]string, len(m.DatesClimbed))
		for i, d := range m.DatesClimbed {
			dates[i] = d.String()
		}
		p.Fprintf(tw, "%s\t%d ft\t%.4f\t%.4f\t%s: %s\n",
			m.PeakName, m.ElevationFeet, m.Latitude, m.Longitude, m.DatesLabel, strings.Join(dates, ", "))
	}
	return tw.Flush()
}
