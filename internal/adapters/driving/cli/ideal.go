package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

var idealTarget float64

var idealCmd = &cobra.Command{
	Use:   "ideal <height>",
	Short: "Show the ideal weight for a height",
	Long: `Show the weight in kilograms that gives the target BMI at a height in
centimetres. The target defaults to the calculator.target_bmi setting.`,
	Example: `  bmi ideal 170
  bmi ideal 170 --target 20`,
	Args: cobra.ExactArgs(1),
	RunE: runIdeal,
}

func init() {
	idealCmd.Flags().Float64Var(&idealTarget, "target", 0, "target BMI (default from settings)")
	rootCmd.AddCommand(idealCmd)
}

func runIdeal(cmd *cobra.Command, args []string) error {
	if err := requireCalculator(); err != nil {
		return err
	}

	height, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return &domain.InvalidInputError{Reason: translate(domain.ReasonNotNumeric)}
	}
	if err := calculatorService.ValidateHeight(height); err != nil {
		return err
	}

	target := idealTarget
	if target == 0 {
		target = calculatorService.TargetBMI()
	} else if err := domain.ValidateTargetBMI(target); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, translatef(domain.FormatTargetBMI, target))
	fmt.Fprintln(out, translatef(domain.FormatIdeal, domain.FormatNumber(domain.IdealWeight(height, target))))
	return nil
}
