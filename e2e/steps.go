package e2e

import (
	"github.com/cucumber/godog"

	"tempus/e2e/steps/admin"
	"tempus/e2e/steps/calc"
	"tempus/e2e/steps/common"
)

// RegisterSteps registers all step definitions from the modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	calc.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
}
