package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Theme is the UI color scheme preference.
type Theme string

// Theme constants.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// SettingKey names a single persisted setting. Keys are stored verbatim in
// the settings table and the local cache.
type SettingKey string

// Setting keys.
const (
	SettingTheme               SettingKey = "theme"
	SettingCurrency            SettingKey = "currency"
	SettingDateFormat          SettingKey = "date_format"
	SettingDefaultReminderDays SettingKey = "default_reminder_days"
	SettingSidebarCollapsed    SettingKey = "sidebar_collapsed"
	SettingCurrentYear         SettingKey = "current_year"
)

// SettingKeys lists every setting key.
var SettingKeys = []SettingKey{
	SettingTheme,
	SettingCurrency,
	SettingDateFormat,
	SettingDefaultReminderDays,
	SettingSidebarCollapsed,
	SettingCurrentYear,
}

// ErrInvalidSetting is returned for unknown keys or unparsable values.
var ErrInvalidSetting = errors.New("invalid setting")

// Default setting values.
const (
	DefaultCurrency     = "USD"
	DefaultDateFormat   = "MM/DD/YYYY"
	DefaultReminderDays = 7
)

// AppSettings is the single logical settings record.
type AppSettings struct {
	Theme               Theme  `mapstructure:"theme" yaml:"theme"`
	Currency            string `mapstructure:"currency" yaml:"currency"`
	DateFormat          string `mapstructure:"date_format" yaml:"date_format"`
	DefaultReminderDays int    `mapstructure:"default_reminder_days" yaml:"default_reminder_days"`
	SidebarCollapsed    bool   `mapstructure:"sidebar_collapsed" yaml:"sidebar_collapsed"`
	CurrentYear         int    `mapstructure:"current_year" yaml:"current_year"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:               ThemeSystem,
		Currency:            DefaultCurrency,
		DateFormat:          DefaultDateFormat,
		DefaultReminderDays: DefaultReminderDays,
		SidebarCollapsed:    false,
		CurrentYear:         time.Now().Year(),
	}
}

// Apply parses value and assigns it to the field named by key.
func (s *AppSettings) Apply(key SettingKey, value string) error {
	switch key {
	case SettingTheme:
		switch Theme(value) {
		case ThemeLight, ThemeDark, ThemeSystem:
			s.Theme = Theme(value)
		default:
			return fmt.Errorf("%w: theme %q", ErrInvalidSetting, value)
		}
	case SettingCurrency:
		if value == "" {
			return fmt.Errorf("%w: empty currency", ErrInvalidSetting)
		}
		s.Currency = value
	case SettingDateFormat:
		if value == "" {
			return fmt.Errorf("%w: empty date format", ErrInvalidSetting)
		}
		s.DateFormat = value
	case SettingDefaultReminderDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: reminder days %q", ErrInvalidSetting, value)
		}
		s.DefaultReminderDays = n
	case SettingSidebarCollapsed:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: sidebar_collapsed %q", ErrInvalidSetting, value)
		}
		s.SidebarCollapsed = b
	case SettingCurrentYear:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: current_year %q", ErrInvalidSetting, value)
		}
		s.CurrentYear = n
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
	}
	return nil
}

// Value returns the string form of the field named by key, as stored in
// the settings table.
func (s AppSettings) Value(key SettingKey) string {
	switch key {
	case SettingTheme:
		return string(s.Theme)
	case SettingCurrency:
		return s.Currency
	case SettingDateFormat:
		return s.DateFormat
	case SettingDefaultReminderDays:
		return strconv.Itoa(s.DefaultReminderDays)
	case SettingSidebarCollapsed:
		return strconv.FormatBool(s.SidebarCollapsed)
	case SettingCurrentYear:
		return strconv.Itoa(s.CurrentYear)
	default:
		return ""
	}
}
