package entity

type Stats struct {
	Mode             string `json:"mode"`
	Backend          string `json:"backend"`
	BackendConnected bool   `json:"backend_connected"`
	SettingsCount    int    `json:"settings_count"`
	UserEmailsCount  int    `json:"user_emails_count"`
	GamesCount       int    `json:"games_count"`
	LedgerCount      int    `json:"ledger_count"`
}
