package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DarkMode is the UI theme preference, stored and passed through.
type DarkMode string

const (
	DarkModeSystem DarkMode = "system"
	DarkModeLight  DarkMode = "light"
	DarkModeDark   DarkMode = "dark"
)

// Valid reports whether the value is a known theme.
func (m DarkMode) Valid() bool {
	switch m {
	case DarkModeSystem, DarkModeLight, DarkModeDark:
		return true
	default:
		return false
	}
}

// UserSettings is the single configuration row. It is created once with
// defaults and only ever updated in place.
type UserSettings struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	AutoBlockSpam       bool         `gorm:"not null" json:"auto_block_spam"`
	AutoBlockThreshold  int          `gorm:"not null" json:"auto_block_threshold"`
	ShowCallOverlay     bool         `gorm:"not null" json:"show_call_overlay"`
	PostCallPrompt      bool         `gorm:"not null" json:"post_call_prompt"`
	WifiOnlySync        bool         `gorm:"not null" json:"wifi_only_sync"`
	EnableNotifications bool         `gorm:"not null" json:"enable_notifications"`
	DarkMode            DarkMode     `gorm:"not null" json:"dark_mode"`
	Language            string       `gorm:"not null" json:"language"`
	LastSyncAt          *time.Time   `json:"last_sync_at,omitempty"`
}

func (UserSettings) TableName() string {
	return "settings"
}

// Defaults returns the settings applied on first initialization.
func Defaults() UserSettings {
	return UserSettings{
		AutoBlockSpam:       false,
		AutoBlockThreshold:  80,
		ShowCallOverlay:     true,
		PostCallPrompt:      true,
		WifiOnlySync:        true,
		EnableNotifications: true,
		DarkMode:            DarkModeSystem,
		Language:            "en",
	}
}

// Language is one of the supported interface languages.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AvailableLanguages lists the official South African languages the UI
// can render in.
func AvailableLanguages() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "af", Name: "Afrikaans"},
		{Code: "zu", Name: "isiZulu"},
		{Code: "xh", Name: "isiXhosa"},
		{Code: "st", Name: "Sesotho"},
		{Code: "tn", Name: "Setswana"},
		{Code: "ss", Name: "siSwati"},
		{Code: "ve", Name: "Tshivenda"},
		{Code: "ts", Name: "Xitsonga"},
		{Code: "nr", Name: "isiNdebele"},
		{Code: "nso", Name: "Sepedi"},
	}
}
