package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/runner"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

var (
	deltaOutDir  string
	deltaAirport string
	deltaArea    string
	deltaRegion  string
	deltaTypes   string
	deltaSchema  string
	deltaGzip    bool
	deltaHistory string
)

var deltaCmd = &cobra.Command{
	Use:   "delta OLD NEW",
	Short: "Compare two navigation database snapshots",
	Long: `Compare two snapshot files and write per-type delta CSVs: current,
added, removed, and modified entities, plus a summary and a run manifest.

Examples:
  # Full default run (PG, PI, PV, DV over the default region preset)
  gsd-compare delta cycle_2401.dat cycle_2402.dat --out delta_out

  # Single airport, runways only
  gsd-compare delta old.dat new.dat --airport LTAC --types PG

  # Explicit area codes (overrides the region preset)
  gsd-compare delta old.dat new.dat --area EUU,TR1

  # Record the run in a history database and gzip the CSVs
  gsd-compare delta old.dat new.dat --history runs.db --gzip`,
	Args: cobra.ExactArgs(2),
	RunE: runDelta,
}

func init() {
	deltaCmd.Flags().StringVar(&deltaOutDir, "out", "", "Output directory (default from config)")
	deltaCmd.Flags().StringVar(&deltaAirport, "airport", "", "ICAO filter, comma-separated (e.g., LTAC or LTAC,LTFM)")
	deltaCmd.Flags().StringVar(&deltaArea, "area", "", "Area code filter, columns 2-4, comma-separated (overrides --region)")
	deltaCmd.Flags().StringVar(&deltaRegion, "region", "", "Region preset: comma-separated area codes or aliases; empty string disables the preset (default from config)")
	deltaCmd.Flags().StringVar(&deltaTypes, "types", "", "Record types to compare, comma-separated (default from config)")
	deltaCmd.Flags().StringVar(&deltaSchema, "schema", "", "Schema overlay TOML registering additional record types")
	deltaCmd.Flags().BoolVar(&deltaGzip, "gzip", false, "Write gzip-compressed CSV outputs")
	deltaCmd.Flags().StringVar(&deltaHistory, "history", "", "SQLite database path recording run summaries")
	rootCmd.AddCommand(deltaCmd)
}

func runDelta(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	reg := schema.NewRegistry()
	if deltaSchema != "" {
		if err := schema.LoadOverlay(deltaSchema, reg); err != nil {
			return err
		}
	}

	types := cfg.Types
	if cmd.Flags().Changed("types") {
		types = splitUpper(deltaTypes)
	}

	regionTokens := cfg.Region
	if cmd.Flags().Changed("region") {
		regionTokens = splitUpper(deltaRegion)
	}
	regionAreas, err := cfg.ExpandRegion(regionTokens)
	if err != nil {
		return err
	}

	// An explicit area filter overrides the region-derived one
	areas := regionAreas
	if explicit := arinc.ParseList(deltaArea); explicit != nil {
		areas = sortedSet(explicit)
	}

	var icaos []string
	if set := arinc.ParseList(deltaAirport); set != nil {
		icaos = sortedSet(set)
	}

	outDir := cfg.OutDir
	if cmd.Flags().Changed("out") {
		outDir = deltaOutDir
	}

	opts := runner.Options{
		OldPath:         args[0],
		NewPath:         args[1],
		OutDir:          outDir,
		Types:           types,
		ICAOs:           icaos,
		Areas:           areas,
		RegionRequested: len(regionTokens) > 0,
		Gzip:            deltaGzip,
		HistoryPath:     deltaHistory,
	}

	summary, err := runner.Run(opts, reg, logger)
	if err != nil {
		return err
	}

	if len(summary.DiscardedICAOs) > 0 {
		fmt.Printf("Discarded ICAOs: %s\n", strings.Join(summary.DiscardedICAOs, ", "))
	} else {
		fmt.Println("No airports discarded (primary present for all with continuations).")
	}
	for _, c := range summary.Counts {
		fmt.Printf("%s: current=%d added=%d removed=%d modified=%d\n",
			c.Type, c.Current, c.Added, c.Removed, c.Modified)
	}
	fmt.Printf("Done. Outputs in: %s\n", outDir)
	return nil
}

func splitUpper(arg string) []string {
	var out []string
	for _, v := range strings.Split(arg, ",") {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// sortedSet keeps filter values in a stable order for the manifest and history
func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
