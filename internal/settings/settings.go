// Package settings holds the user's notification and display preferences.
package settings

import "context"

type Settings struct {
	SpendingAlerts bool   `json:"spendingAlerts"`
	WeeklyReports  bool   `json:"weeklyReports"`
	DisplayName    string `json:"displayName"`
	Email          string `json:"email"`
}

// Defaults are the settings of a fresh install and the target of Reset.
func Defaults() Settings {
	return Settings{SpendingAlerts: true, WeeklyReports: true}
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	SpendingAlerts *bool   `json:"spendingAlerts,omitempty"`
	WeeklyReports  *bool   `json:"weeklyReports,omitempty"`
	DisplayName    *string `json:"displayName,omitempty"`
	Email          *string `json:"email,omitempty"`
}

// Apply merges p into s without validation.
func (p Patch) Apply(s Settings) Settings {
	if p.SpendingAlerts != nil {
		s.SpendingAlerts = *p.SpendingAlerts
	}

	if p.WeeklyReports != nil {
		s.WeeklyReports = *p.WeeklyReports
	}

	if p.DisplayName != nil {
		s.DisplayName = *p.DisplayName
	}

	if p.Email != nil {
		s.Email = *p.Email
	}

	return s
}

//go:generate mockgen -source=settings.go -destination=client_mock.go -package=settings
type Client interface {
	Save(ctx context.Context, s Settings) error
}
