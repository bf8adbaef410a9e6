package config

type Firestore struct {
	ProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	CredentialsJSON string `env:"FIRESTORE_CREDENTIALS_JSON" json:"-"`
	Collection      string `env:"FIRESTORE_COLLECTION" envDefault:"epic_games_notifier"`
}
