package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the suite context the admin steps need.
type TestContext interface {
	DoJSON(method, path string, body any, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseBody() []byte
	AdminToken() string
	ServiceToken() string
	SetServiceToken(token string)
}

// RegisterSteps wires the admin API steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	ctx.Step(`^I mint a service token for "([^"]*)"$`, steps.mintServiceToken)
	ctx.Step(`^I request recent usage$`, steps.recentUsage)
	ctx.Step(`^I request recent usage with limit (\d+)$`, steps.recentUsageWithLimit)
	ctx.Step(`^the usage events should include operation "([^"]*)"$`, steps.usageIncludesOperation)
	ctx.Step(`^I request the rate limit status for identity "([^"]*)"$`, steps.rateLimitStatus)
	ctx.Step(`^I reset the (\w+) budget for identity "([^"]*)"$`, steps.resetBudget)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.tc.ServiceToken()}
}

func (s *adminSteps) mintServiceToken(ctx context.Context, subject string) error {
	err := s.tc.DoJSON("POST", "/admin/token",
		map[string]any{"subject": subject},
		map[string]string{"X-Admin-Token": s.tc.AdminToken()},
	)
	if err != nil {
		return err
	}

	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	minted, ok := token.(string)
	if !ok || minted == "" {
		return fmt.Errorf("minted token is %v", token)
	}
	s.tc.SetServiceToken(minted)
	return nil
}

func (s *adminSteps) recentUsage(ctx context.Context) error {
	return s.tc.GET("/admin/usage/recent", s.bearer())
}

func (s *adminSteps) recentUsageWithLimit(ctx context.Context, limit int) error {
	return s.tc.GET(fmt.Sprintf("/admin/usage/recent?limit=%d", limit), s.bearer())
}

func (s *adminSteps) usageIncludesOperation(ctx context.Context, operation string) error {
	var resp struct {
		Events []struct {
			Operation string `json:"operation"`
		} `json:"events"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("decode usage response: %w", err)
	}
	for _, event := range resp.Events {
		if event.Operation == operation {
			return nil
		}
	}
	return fmt.Errorf("no usage event with operation %q among %d events", operation, len(resp.Events))
}

func (s *adminSteps) rateLimitStatus(ctx context.Context, identity string) error {
	return s.tc.GET("/admin/ratelimit/status?identity="+identity, s.bearer())
}

func (s *adminSteps) resetBudget(ctx context.Context, class, identity string) error {
	headers := s.bearer()
	return s.tc.DoJSON("POST", "/admin/ratelimit/reset",
		map[string]any{"identity": identity, "class": class},
		headers,
	)
}
