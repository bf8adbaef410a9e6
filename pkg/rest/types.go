// Package rest holds the JSON bodies of the web panel API.
package rest

import "time"

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

type Settings struct {
	PriceThreshold int      `json:"price_threshold" validate:"gte=0"`
	Currency       string   `json:"currency" validate:"required,alpha,len=3"`
	Emails         []string `json:"emails" validate:"dive,email"`
	Categories     []string `json:"categories"`
	DeepSearchFree bool     `json:"deep_search_free"`
}

// AdminSettings is Settings plus read-only process information.
type AdminSettings struct {
	Settings

	StorageMode string `json:"storage_mode"`
}

type RegisterEmail struct {
	Email string `json:"email" validate:"required,email"`
}

type Visitor struct {
	Registered     bool   `json:"registered"`
	Email          string `json:"email,omitempty"`
	PriceThreshold int    `json:"price_threshold"`
	Currency       string `json:"currency"`
}

type Game struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	OriginalPrice   string     `json:"original_price"`
	DiscountedPrice string     `json:"discounted_price"`
	ImageURL        string     `json:"image_url"`
	URL             string     `json:"url"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsFree          bool       `json:"is_free"`
	IsCheap         bool       `json:"is_cheap"`
	FoundDate       time.Time  `json:"found_date"`
}

type Stats struct {
	Mode             string `json:"mode"`
	Backend          string `json:"backend"`
	BackendConnected bool   `json:"backend_connected"`
	SettingsCount    int    `json:"settings_count"`
	UserEmailsCount  int    `json:"user_emails_count"`
	GamesCount       int    `json:"games_count"`
	LedgerCount      int    `json:"ledger_count"`
}

// Error is the body of every failed request.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
