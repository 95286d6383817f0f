package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// CalculateInput is the input schema for the calculate_bmi tool.
type CalculateInput struct {
	Height float64 `json:"height" jsonschema:"height in centimetres (100-250)"`
	Weight float64 `json:"weight" jsonschema:"weight in kilograms (20-300)"`
	Note   string  `json:"note,omitempty" jsonschema:"optional note stored with the result"`
	Save   bool    `json:"save,omitempty" jsonschema:"record the result in history"`
}

// CalculateOutput is the output schema for the calculate_bmi tool.
type CalculateOutput struct {
	ID          string  `json:"id,omitempty"`
	BMI         float64 `json:"bmi"`
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Advice      string  `json:"advice"`
	Timestamp   string  `json:"timestamp"`
	IdealWeight float64 `json:"ideal_weight"`
	WeightDelta float64 `json:"weight_delta"`
	Progress    float64 `json:"progress"`
	Summary     string  `json:"summary"`
}

// IdealInput is the input schema for the ideal_weight tool.
type IdealInput struct {
	Height float64 `json:"height" jsonschema:"height in centimetres (100-250)"`
	Target float64 `json:"target,omitempty" jsonschema:"target BMI between 18 and 25 (default from settings)"`
}

// IdealOutput is the output schema for the ideal_weight tool.
type IdealOutput struct {
	Height      float64 `json:"height"`
	TargetBMI   float64 `json:"target_bmi"`
	IdealWeight float64 `json:"ideal_weight"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_bmi",
		Description: "Calculate and classify BMI from height (cm) and weight (kg)",
	}, s.handleCalculate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ideal_weight",
		Description: "Weight in kg that gives the target BMI at a height in cm",
	}, s.handleIdealWeight)
}

// handleCalculate handles the calculate_bmi tool invocation.
func (s *Server) handleCalculate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, CalculateOutput, error) {
	calc := s.ports.Calculator

	var (
		result *domain.BMIResult
		err    error
	)
	if input.Save {
		if s.ports.History == nil {
			return nil, CalculateOutput{}, ErrHistoryUnavailable
		}
		result, err = s.ports.History.Record(ctx, input.Height, input.Weight, input.Note)
	} else {
		result, err = calc.Process(input.Height, input.Weight, input.Note)
	}
	if err != nil {
		return nil, CalculateOutput{}, err
	}

	advice := calc.WeightDifference(result.Weight, result.Height)
	progress, _ := calc.Progress(result.BMI)

	return nil, CalculateOutput{
		ID:          result.ID,
		BMI:         result.BMI,
		Category:    result.Category.Name(),
		Label:       calc.Translate(result.Category.Label()),
		Advice:      calc.Translate(result.Category.Advice()),
		Timestamp:   result.Timestamp.Format(time.RFC3339),
		IdealWeight: advice.Ideal,
		WeightDelta: advice.Delta,
		Progress:    progress,
		Summary:     calc.Format(*result),
	}, nil
}

// handleIdealWeight handles the ideal_weight tool invocation.
func (s *Server) handleIdealWeight(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input IdealInput,
) (*mcp.CallToolResult, IdealOutput, error) {
	if err := s.ports.Calculator.ValidateHeight(input.Height); err != nil {
		return nil, IdealOutput{}, err
	}

	target := input.Target
	if target == 0 {
		target = s.ports.Calculator.TargetBMI()
	} else if err := domain.ValidateTargetBMI(target); err != nil {
		return nil, IdealOutput{}, fmt.Errorf("target: %w", err)
	}

	return nil, IdealOutput{
		Height:      input.Height,
		TargetBMI:   target,
		IdealWeight: domain.IdealWeight(input.Height, target),
	}, nil
}
