package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
)

var (
	historyLimit  int
	historyJSON   bool
	historyYes    bool
	historyFormat string
	historyOutput string
	chartHeight   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage measurement history",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent measurements, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all measurements",
	RunE:  runHistoryClear,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a single measurement",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw the BMI trend",
	Long: `Draw the BMI trend as a text chart with guide lines at the category
boundaries 18.5, 25 and 30. At least two measurements are needed.`,
	RunE: runHistoryChart,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history",
	Example: `  bmi history export --format csv > history.csv
  bmi history export --format yaml --output history.yaml`,
	RunE: runHistoryExport,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default from settings)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")
	historyChartCmd.Flags().IntVar(&chartHeight, "height", chart.DefaultHeight, "chart height in rows")
	historyExportCmd.Flags().StringVarP(&historyFormat, "format", "f", string(domain.ExportJSON), "json, yaml or csv")
	historyExportCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "write to file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyChartCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	limit := historyLimit
	if limit <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			limit = settings.History.DisplayLimit
		}
	}

	results, err := historyService.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		return writeEntriesJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, translate(i18n.MsgNoHistory))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEASURED\tHEIGHT\tWEIGHT\tBMI\tCATEGORY\tNOTE\tID")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%s\t%s\n",
			r.Timestamp.Format(domain.TimestampLayout),
			domain.FormatNumber(r.Height),
			domain.FormatNumber(r.Weight),
			r.BMI,
			translate(r.Category.Label()),
			r.Note,
			shortID(r.ID),
		)
	}
	return tw.Flush()
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !historyYes {
		fmt.Fprint(out, translate(i18n.MsgConfirmClear))
		answer, _ := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !isYes(answer) {
			return nil
		}
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(out, translate(i18n.MsgHistoryCleared))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	id, err := resolveID(cmd, args[0])
	if err != nil {
		return err
	}
	if err := historyService.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}

func runHistoryChart(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	trend, err := historyService.Trend(cmd.Context())
	if errors.Is(err, domain.ErrNotEnoughData) {
		fmt.Fprintln(out, translate(i18n.MsgNotEnoughData))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, translate(i18n.MsgTrendTitle))
	var opts []chart.Option
	if isTerminal(out) {
		opts = append(opts, chart.WithColor())
	}
	fmt.Fprint(out, chart.Render(trend, terminalWidth(out), chartHeight, opts...))
	fmt.Fprintln(out)
	fmt.Fprintln(out, chart.Summary(trend))
	return nil
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	format := domain.ExportFormat(historyFormat)
	if !format.IsValid() {
		return fmt.Errorf("unsupported format %q (want json, yaml or csv)", historyFormat)
	}

	var w io.Writer = cmd.OutOrStdout()
	if historyOutput != "" {
		f, err := os.OpenFile(historyOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", historyOutput, err)
		}
		defer f.Close()
		w = f
	}

	return historyService.Export(cmd.Context(), w, format)
}

// resolveID expands a unique ID prefix, as shown by 'history list'.
func resolveID(cmd *cobra.Command, prefix string) (string, error) {
	results, err := historyService.List(cmd.Context(), 0)
	if err != nil {
		return "", err
	}
	var match string
	for _, r := range results {
		if r.ID == prefix {
			return r.ID, nil
		}
		if len(prefix) >= 4 && len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("measurement %s: %w", prefix, domain.ErrNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal.
func terminalWidth(w io.Writer) int {
	if isTerminal(w) {
		f := w.(*os.File)
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return chart.DefaultWidth
}

// historyEntry is the --json output shape of 'history list'.
type historyEntry struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	BMI       float64 `json:"bmi"`
	Category  string  `json:"category"`
	Label     string  `json:"label"`
	Note      string  `json:"note,omitempty"`
}

func writeEntriesJSON(w io.Writer, results []domain.BMIResult) error {
	entries := make([]historyEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, historyEntry{
			ID:        r.ID,
			Timestamp: r.Timestamp.Format(time.RFC3339),
			Height:    r.Height,
			Weight:    r.Weight,
			BMI:       r.BMI,
			Category:  r.Category.Name(),
			Label:     translate(r.Category.Label()),
			Note:      r.Note,
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
