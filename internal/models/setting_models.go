package models

import "github.com/shopspring/decimal"

// AppSettings are the register-wide settings.
type AppSettings struct {
	Tax      decimal.Decimal `json:"tax"` // percent
	Currency string          `json:"currency"`
}

// DefaultAppSettings is used until someone saves settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{Tax: decimal.NewFromInt(10), Currency: "₱"}
}

// AdminCredentials is the built-in administrator login.
type AdminCredentials struct {
	User     string `json:"user"`
	PassHash string `json:"pass_hash,omitempty"`
	// Pass is the plaintext form older clients stored; hashed on load.
	Pass string `json:"pass,omitempty"`
}
