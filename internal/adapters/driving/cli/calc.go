package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
)

var (
	calcNote   string
	calcTarget float64
	calcNoSave bool
	calcJSON   bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [height weight]",
	Short: "Calculate BMI",
	Long: `Calculate BMI from height in centimetres and weight in kilograms.

With both arguments a single result is printed. Without arguments an
interactive session prompts for measurements until you enter q.

Heights must be between 100 and 250cm and weights between 20 and 300kg.
Results are saved to history unless --no-save is given.`,
	Example: `  bmi calc 170 65
  bmi calc 170 65 --note "after run" --target 21
  bmi calc`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcNote, "note", "", "note to store with the result")
	calcCmd.Flags().Float64Var(&calcTarget, "target", 0, "target BMI for ideal weight (default from settings)")
	calcCmd.Flags().BoolVar(&calcNoSave, "no-save", false, "do not record the result in history")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	if err := requireCalculator(); err != nil {
		return err
	}
	if !calcNoSave {
		if err := requireHistory(); err != nil {
			return err
		}
	}
	if calcTarget != 0 {
		if err := domain.ValidateTargetBMI(calcTarget); err != nil {
			return err
		}
	}

	if len(args) == 0 {
		return runInteractive(cmd)
	}

	height, weight, err := parseMeasurement(args[0], args[1])
	if err != nil {
		return err
	}

	result, err := measure(cmd, height, weight, calcNote)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), newReport(*result))
}

// measure records or just processes a measurement depending on --no-save.
func measure(cmd *cobra.Command, height, weight float64, note string) (*domain.BMIResult, error) {
	if calcNoSave {
		return calculatorService.Process(height, weight, note)
	}
	return historyService.Record(cmd.Context(), height, weight, note)
}

func parseMeasurement(heightArg, weightArg string) (float64, float64, error) {
	height, errH := strconv.ParseFloat(strings.TrimSpace(heightArg), 64)
	weight, errW := strconv.ParseFloat(strings.TrimSpace(weightArg), 64)
	if errH != nil || errW != nil {
		return 0, 0, &domain.InvalidInputError{Reason: translate(domain.ReasonNotNumeric)}
	}
	return height, weight, nil
}

// report is a result together with the derived advice.
type report struct {
	Result    domain.BMIResult
	TargetBMI float64
	Advice    domain.WeightAdvice
	Progress  float64
}

func newReport(result domain.BMIResult) report {
	target := calcTarget
	if target == 0 {
		target = calculatorService.TargetBMI()
	}
	progress, _ := calculatorService.Progress(result.BMI)
	return report{
		Result:    result,
		TargetBMI: target,
		Advice:    domain.WeightDifference(result.Weight, result.Height, target),
		Progress:  progress,
	}
}

// reportJSON is the --json output shape.
type reportJSON struct {
	ID          string  `json:"id,omitempty"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	BMI         float64 `json:"bmi"`
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Advice      string  `json:"advice"`
	Timestamp   string  `json:"timestamp"`
	Note        string  `json:"note,omitempty"`
	TargetBMI   float64 `json:"target_bmi"`
	IdealWeight float64 `json:"ideal_weight"`
	WeightDelta float64 `json:"weight_delta"`
	Message     string  `json:"message"`
	Progress    float64 `json:"progress"`
}

func printReport(w io.Writer, r report) error {
	if calcJSON {
		out := reportJSON{
			ID:          r.Result.ID,
			Height:      r.Result.Height,
			Weight:      r.Result.Weight,
			BMI:         r.Result.BMI,
			Category:    r.Result.Category.Name(),
			Label:       translate(r.Result.Category.Label()),
			Advice:      translate(r.Result.Category.Advice()),
			Timestamp:   r.Result.Timestamp.Format(time.RFC3339),
			Note:        r.Result.Note,
			TargetBMI:   r.TargetBMI,
			IdealWeight: r.Advice.Ideal,
			WeightDelta: r.Advice.Delta,
			Message:     r.Advice.MessageWith(translatef),
			Progress:    r.Progress,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, calculatorService.Format(r.Result))
	fmt.Fprintln(w, translatef(domain.FormatIdeal, domain.FormatNumber(r.Advice.Ideal)))
	fmt.Fprintln(w, r.Advice.MessageWith(translatef))
	fmt.Fprintln(w, translatef(domain.FormatProgress, r.Progress*100))
	return nil
}

// runInteractive prompts for measurements until the user quits.
func runInteractive(cmd *cobra.Command) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, translate(i18n.MsgCalculatorTitle))
	for {
		height, ok := promptNumber(reader, out, i18n.MsgEnterHeight, true)
		if !ok {
			break
		}
		weight, ok := promptNumber(reader, out, i18n.MsgEnterWeight, false)
		if !ok {
			break
		}
		fmt.Fprint(out, translate(i18n.MsgEnterNote))
		note, _ := readLine(reader)

		result, err := measure(cmd, height, weight, note)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidInput) {
				return err
			}
			fmt.Fprintln(out, translatef(i18n.MsgError, errorText(err)))
			continue
		}

		fmt.Fprintln(out)
		if err := printReport(out, newReport(*result)); err != nil {
			return err
		}
		fmt.Fprintln(out)

		fmt.Fprint(out, translate(i18n.MsgContinue))
		answer, err := readLine(reader)
		if err != nil || !isYes(answer) {
			break
		}
	}

	fmt.Fprintln(out, translate(i18n.MsgGoodbye))
	return nil
}

// promptNumber asks until a number is entered. It returns false when the
// input ends or, if allowQuit is set, the user enters q.
func promptNumber(reader *bufio.Reader, out io.Writer, prompt string, allowQuit bool) (float64, bool) {
	for {
		fmt.Fprint(out, translate(prompt))
		line, err := readLine(reader)
		if allowQuit && strings.EqualFold(line, "q") {
			return 0, false
		}
		if v, parseErr := strconv.ParseFloat(line, 64); parseErr == nil {
			return v, true
		}
		if err != nil {
			fmt.Fprintln(out)
			return 0, false
		}
		fmt.Fprintln(out, translate(i18n.MsgInvalidNumber))
	}
}

// readLine reads one trimmed line. The error is non-nil at end of input.
func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	return strings.TrimSpace(input), err
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
