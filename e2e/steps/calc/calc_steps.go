package calc

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the suite context the calculation steps
// need.
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps wires the date-time calculation steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &calcSteps{tc: tc}

	ctx.Step(`^I add (-?\d+) (\w+) to "([^"]*)"$`, steps.add)
	ctx.Step(`^I add (-?\d+) (\w+) to "([^"]*)" in the (\w+) calendar$`, steps.addInCalendar)
	ctx.Step(`^I subtract (-?\d+) (\w+) from "([^"]*)"$`, steps.subtract)
	ctx.Step(`^I truncate "([^"]*)" to (\w+)$`, steps.truncate)
	ctx.Step(`^I measure (\w+) from "([^"]*)" to "([^"]*)"$`, steps.measure)
	ctx.Step(`^I validate the (\w+) date (-?\d+)-(\d+)-(\d+)$`, steps.validateDate)
	ctx.Step(`^the result should be "([^"]*)"$`, steps.resultShouldBe)
	ctx.Step(`^the span should be (-?\d+)$`, steps.spanShouldBe)
}

type calcSteps struct {
	tc TestContext
}

func (s *calcSteps) add(ctx context.Context, amount int, unit, value string) error {
	return s.tc.POST("/v1/calc/plus", map[string]any{
		"value":  value,
		"amount": amount,
		"unit":   unit,
	})
}

func (s *calcSteps) addInCalendar(ctx context.Context, amount int, unit, value, chronology string) error {
	return s.tc.POST("/v1/calc/plus", map[string]any{
		"value":      value,
		"amount":     amount,
		"unit":       unit,
		"chronology": chronology,
	})
}

func (s *calcSteps) subtract(ctx context.Context, amount int, unit, value string) error {
	return s.tc.POST("/v1/calc/minus", map[string]any{
		"value":  value,
		"amount": amount,
		"unit":   unit,
	})
}

func (s *calcSteps) truncate(ctx context.Context, value, unit string) error {
	return s.tc.POST("/v1/calc/truncate", map[string]any{
		"value": value,
		"unit":  unit,
	})
}

func (s *calcSteps) measure(ctx context.Context, unit, start, end string) error {
	return s.tc.POST("/v1/calc/until", map[string]any{
		"start": start,
		"end":   end,
		"unit":  unit,
	})
}

func (s *calcSteps) validateDate(ctx context.Context, chronology string, year, month, day int) error {
	return s.tc.POST("/v1/dates/validate", map[string]any{
		"year":       year,
		"month":      month,
		"day":        day,
		"chronology": chronology,
	})
}

func (s *calcSteps) resultShouldBe(ctx context.Context, expected string) error {
	value, err := s.tc.GetResponseField("value")
	if err != nil {
		return err
	}
	if value != expected {
		return fmt.Errorf("expected result %q, got %v", expected, value)
	}
	return nil
}

func (s *calcSteps) spanShouldBe(ctx context.Context, expected int) error {
	amount, err := s.tc.GetResponseField("amount")
	if err != nil {
		return err
	}
	got, ok := amount.(float64)
	if !ok {
		return fmt.Errorf("amount is %T, not a number", amount)
	}
	if int(got) != expected {
		return fmt.Errorf("expected span %d, got %v", expected, got)
	}
	return nil
}
