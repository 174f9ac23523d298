package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arielreyes/crewsight/internal/config"
	"github.com/arielreyes/crewsight/pkg/core/identity"
	"github.com/arielreyes/crewsight/pkg/core/services"
	"github.com/arielreyes/crewsight/pkg/core/window"
	"github.com/arielreyes/crewsight/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	configPath string
	verbose    bool
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewsight",
		Short: "CrewSight - Analyze personnel daily-activity availability",
		Long:  `A CLI tool for classifying daily activity reports, rating per-person availability, and surfacing unassigned personnel.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to crewsight.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on the console")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(unassignedCmd())
	rootCmd.AddCommand(windowCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and loads configuration
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("crewsight", verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded")

	return nil
}

// parseWindowFlags turns the --start/--end flag values into time pointers.
// Both must be given together.
func parseWindowFlags(start, end string) (*time.Time, *time.Time, error) {
	if (start == "") != (end == "") {
		return nil, nil, fmt.Errorf("--start and --end must be used together")
	}
	if start == "" {
		return nil, nil, nil
	}

	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --start date %q: %w", start, err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --end date %q: %w", end, err)
	}
	return &s, &e, nil
}

// Command definitions

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <dataset_file>",
		Short: "Classify a daily-activity file and rate per-person availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			outDir, _ := cmd.Flags().GetString("out")
			allDepartments, _ := cmd.Flags().GetBool("all-departments")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}

			opts := services.AnalyzeOptions{
				DatasetData:          data,
				SkipDepartmentFilter: allDepartments,
			}

			if rosterPath != "" {
				opts.RosterData, err = os.ReadFile(rosterPath)
				if err != nil {
					return fmt.Errorf("failed to read roster: %w", err)
				}
			}

			opts.WindowStart, opts.WindowEnd, err = parseWindowFlags(start, end)
			if err != nil {
				return err
			}

			result, err := services.Analyze(app.ctx, app.cfg, app.logger, opts)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Analysis complete (run %s)\n\n", result.RunID)
			fmt.Printf("Window:     %s to %s (%d days)\n",
				result.Window.Start.Format("2006-01-02"),
				result.Window.End.Format("2006-01-02"),
				result.Window.Days())
			fmt.Printf("Thresholds: high ≥ %d days or streak ≥ %d, low ≤ %d days\n\n",
				result.Thresholds.HighDays, result.Thresholds.Streak, result.Thresholds.LowDays)

			fmt.Printf("%-14s %-30s %-10s %6s %8s %7s  %s\n",
				"ID", "Collaborator", "Dept", "Days", "Streak", "Avail%", "Criticality")
			for _, s := range result.Summary {
				fmt.Printf("%-14s %-30s %-10s %6d %8d %6.1f%%  %s\n",
					identity.FormatForDisplay(s.ID), s.Collaborator, s.Department,
					s.AvailableDays, s.MaxStreak, s.AvailablePct, s.Criticality)
			}

			if len(result.Unassigned) > 0 {
				fmt.Printf("\n⚠ %d rows with no assigned activity\n", len(result.Unassigned))
			}
			if len(result.Excluded) > 0 {
				fmt.Printf("⚠ %d rows excluded by the roster\n", len(result.Excluded))
			}
			if result.Report != nil {
				fmt.Printf("\nAvailability trend: %s\n", result.Report.Trend)
				for _, name := range result.Report.LeaveAlerts {
					fmt.Printf("  On leave all period: %s\n", name)
				}
				if len(result.Report.ProjectCodes) > 0 {
					fmt.Printf("Active project codes: %s\n", strings.Join(result.Report.ProjectCodes, ", "))
				}
			}

			if outDir != "" {
				if err := services.ExportAll(outDir, result, app.logger); err != nil {
					return err
				}
				fmt.Printf("\nTables exported to %s\n", outDir)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("roster", "", "Path to an allow-list file of valid IDs")
	cmd.Flags().String("start", "", "Window start date (YYYY-MM-DD, requires --end)")
	cmd.Flags().String("end", "", "Window end date (YYYY-MM-DD, requires --start)")
	cmd.Flags().String("out", "", "Directory to export CSV tables into")
	cmd.Flags().Bool("all-departments", false, "Skip the configured department filter")

	return cmd
}

func unassignedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unassigned <dataset_file>",
		Short: "List personnel-day rows with no assigned activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}

			ws, we, err := parseWindowFlags(start, end)
			if err != nil {
				return err
			}
			var w *window.Window
			if ws != nil {
				w = &window.Window{Start: *ws, End: *we}
			}

			rows, err := services.ExtractUnassigned(app.ctx, app.logger, data, w)
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				fmt.Println("\nNo unassigned rows found.")
				return nil
			}

			fmt.Printf("\nFound %d unassigned rows:\n\n", len(rows))
			for _, r := range rows {
				fmt.Printf("- %s  %-12s %s (%s)\n",
					r.Date.Format("2006-01-02"), r.ID, r.Collaborator, r.Department)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("start", "", "Window start date (YYYY-MM-DD, requires --end)")
	cmd.Flags().String("end", "", "Window end date (YYYY-MM-DD, requires --start)")

	return cmd
}

func windowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window [as_of_date]",
		Short: "Show the reporting window for a date (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now().UTC()
			if len(args) > 0 {
				var err error
				asOf, err = time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
			}

			w := window.Resolve(nil, nil, asOf)
			fmt.Printf("\nReporting window as of %s:\n", asOf.Format("2006-01-02"))
			fmt.Printf("  Start: %s\n", w.Start.Format("2006-01-02"))
			fmt.Printf("  End:   %s\n", w.End.Format("2006-01-02"))
			fmt.Printf("  Days:  %d\n\n", w.Days())

			return nil
		},
	}
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (load config once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without reloading configuration.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full
				// Execute() flow so PersistentPreRunE doesn't reload the app
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-30s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                           Show this help message")
	fmt.Println("  exit, quit                     Exit the interactive session")
}
