package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmourad/delaylens/internal/analysis"
	"github.com/dmourad/delaylens/internal/loader"
	"github.com/dmourad/delaylens/internal/reporter"
	"github.com/dmourad/delaylens/internal/ui"
)

var (
	flagBaseline     string
	flagCurrent      string
	flagAsBuilt      string
	flagEvents       string
	flagRecords      string
	flagUpdates      []string
	flagPeriodStart  string
	flagPeriodEnd    string
	flagWindowMode   string
	flagWindowSize   int
	flagCriticalOnly bool
	flagJSON         bool
	flagNoSummary    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "delaylens",
		Short: "Forensic schedule delay analysis",
		Long: `Delaylens runs forensic delay analysis over construction schedule
networks: it compares baselines against as-builts, inserts or removes
delay events on CPM logic, and localizes delay in time windows using
the schedule updates and records kept during the project.`,
	}

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(methodsCmd())
	rootCmd.AddCommand(promptsCmd())
	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available analysis methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := analysis.Default().List()
			if flagJSON {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s\n    %s\n", ui.BoldCyan(info.Name), ui.Dim(info.Description))
			}
			return nil
		},
	}
}

func promptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts <method>",
		Short: "Show the configuration prompts for a method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := analysis.Default().Get(args[0])
			if err != nil {
				return err
			}
			prompts := m.Prompts()
			if flagJSON {
				data, err := json.MarshalIndent(prompts, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("%s\n\n", ui.BoldCyan(m.Name()))
			for _, p := range prompts {
				fmt.Printf("  %s (%s)", ui.Bold(p.Label), p.Type)
				if p.Default != "" {
					fmt.Printf(" %s", ui.Dim("[default: "+p.Default+"]"))
				}
				fmt.Println()
				if len(p.Options) > 0 {
					for _, opt := range p.Options {
						fmt.Printf("      - %s\n", opt)
					}
				}
				if p.Help != "" {
					fmt.Printf("      %s\n", ui.Dim(p.Help))
				}
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <method>",
		Short: "Run a delay analysis method over the given schedule files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := analysis.Default().Get(args[0])
			if err != nil {
				return err
			}

			in, err := buildInputs()
			if err != nil {
				return err
			}
			if err := m.Validate(in); err != nil {
				return fmt.Errorf("%s: %w", m.Name(), err)
			}

			if !flagJSON {
				for _, note := range m.Suggest(in) {
					fmt.Fprintf(os.Stderr, "%s %s\n", ui.Yellow("note:"), note)
				}
			}

			result, err := m.Analyze(in)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name(), err)
			}

			rep := reporter.New(result)
			if flagJSON {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			rep.PrintReport(os.Stdout)
			if !flagNoSummary {
				rep.PrintSummary(os.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "Baseline schedule JSON file")
	cmd.Flags().StringVar(&flagCurrent, "current", "", "Current schedule JSON file")
	cmd.Flags().StringVar(&flagAsBuilt, "as-built", "", "As-built schedule JSON file")
	cmd.Flags().StringVar(&flagEvents, "events", "", "Delay events JSON file")
	cmd.Flags().StringVar(&flagRecords, "records", "", "Contemporaneous records JSON file")
	cmd.Flags().StringArrayVar(&flagUpdates, "update", nil, "Schedule update JSON file (repeatable)")
	cmd.Flags().StringVar(&flagPeriodStart, "period-start", "", "Analysis period start date")
	cmd.Flags().StringVar(&flagPeriodEnd, "period-end", "", "Analysis period end date")
	cmd.Flags().StringVar(&flagWindowMode, "window-method", analysis.WindowMethodMonthly,
		"Windows analysis mode: Monthly, Fixed Duration, or Schedule Updates")
	cmd.Flags().IntVar(&flagWindowSize, "window-size", 30, "Window size in days for Fixed Duration mode")
	cmd.Flags().BoolVar(&flagCriticalOnly, "critical-only", false, "Only analyze critical-path activities")
	cmd.Flags().BoolVar(&flagNoSummary, "no-summary", false, "Suppress the narrative summary")
	return cmd
}

// buildInputs loads every supplied file into an analysis.Inputs. Flags
// that were not given leave their input nil; each method validates what
// it actually needs.
func buildInputs() (analysis.Inputs, error) {
	in := analysis.NewInputs()
	in.IncludeNonCritical = !flagCriticalOnly
	in.WindowMethod = flagWindowMode
	in.WindowSizeDays = flagWindowSize

	var err error
	if flagBaseline != "" {
		if in.Baseline, err = loader.LoadSchedule(flagBaseline); err != nil {
			return in, err
		}
	}
	if flagCurrent != "" {
		if in.Current, err = loader.LoadSchedule(flagCurrent); err != nil {
			return in, err
		}
	}
	if flagAsBuilt != "" {
		if in.AsBuilt, err = loader.LoadSchedule(flagAsBuilt); err != nil {
			return in, err
		}
	}
	if flagEvents != "" {
		if in.Events, err = loader.LoadEvents(flagEvents); err != nil {
			return in, err
		}
	}
	if len(flagUpdates) > 0 {
		if in.Updates, err = loader.LoadUpdates(flagUpdates); err != nil {
			return in, err
		}
	}
	if flagRecords != "" {
		rec, err := loader.LoadRecords(flagRecords)
		if err != nil {
			return in, err
		}
		in.DailyLogs = rec.DailyLogs
		in.ProgressReports = rec.ProgressReports
		in.Weather = rec.Weather
	}
	if flagPeriodStart != "" {
		if in.PeriodStart, err = loader.ParseDate(flagPeriodStart); err != nil {
			return in, fmt.Errorf("period-start: %w", err)
		}
	}
	if flagPeriodEnd != "" {
		if in.PeriodEnd, err = loader.ParseDate(flagPeriodEnd); err != nil {
			return in, fmt.Errorf("period-end: %w", err)
		}
	}
	return in, nil
}
