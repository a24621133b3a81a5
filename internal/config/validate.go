package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if err := c.Quota.validate(); err != nil {
		return fmt.Errorf("quota: %w", err)
	}
	if err := c.Insight.validate(); err != nil {
		return fmt.Errorf("insight: %w", err)
	}

	return nil
}

func (q *QuotaConfig) validate() error {
	budgets := map[string]int{
		"free_weekly_messages": q.FreeWeeklyMessages,
		"free_weekly_tokens":   q.FreeWeeklyTokens,
		"plus_weekly_messages": q.PlusWeeklyMessages,
		"plus_weekly_tokens":   q.PlusWeeklyTokens,
		"pro_weekly_messages":  q.ProWeeklyMessages,
		"pro_weekly_tokens":    q.ProWeeklyTokens,
	}
	for name, v := range budgets {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", name, v)
		}
	}
	return nil
}

func (i *InsightConfig) validate() error {
	if i.MinObservations < 1 {
		return fmt.Errorf("min_observations must be >= 1 (got %d)", i.MinObservations)
	}
	if i.StruggleThreshold <= 0 || i.StruggleThreshold > 1 {
		return fmt.Errorf("struggle_threshold must be in (0, 1] (got %v)", i.StruggleThreshold)
	}
	if i.StrengthThreshold <= 0 || i.StrengthThreshold > 1 {
		return fmt.Errorf("strength_threshold must be in (0, 1] (got %v)", i.StrengthThreshold)
	}
	if i.StruggleThreshold >= i.StrengthThreshold {
		return fmt.Errorf("struggle_threshold (%v) must be below strength_threshold (%v)",
			i.StruggleThreshold, i.StrengthThreshold)
	}
	if i.MaxExamples < 0 {
		return fmt.Errorf("max_examples must be >= 0 (got %d)", i.MaxExamples)
	}
	if i.MaxPromptFacts < 1 {
		return fmt.Errorf("max_prompt_facts must be >= 1 (got %d)", i.MaxPromptFacts)
	}
	if i.RecentWindow < 1 {
		return fmt.Errorf("recent_window must be >= 1 (got %d)", i.RecentWindow)
	}
	return nil
}
