package config

import "time"

type Epic struct {
	PromotionsURL   string        `env:"EPIC_PROMOTIONS_URL" envDefault:"https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions?locale=en-US&country=IN&allowCountries=IN"`
	GraphQLURL      string        `env:"EPIC_GRAPHQL_URL" envDefault:"https://graphql.epicgames.com/graphql"`
	StoreURL        string        `env:"EPIC_STORE_URL" envDefault:"https://store.epicgames.com/en-US/p/"`
	Locale          string        `env:"EPIC_LOCALE" envDefault:"en-US"`
	Country         string        `env:"EPIC_COUNTRY" envDefault:"IN"`
	SearchCount     int           `env:"EPIC_SEARCH_COUNT" envDefault:"1000"`
	UserAgent       string        `env:"EPIC_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"`
	RequestTimeout  time.Duration `env:"EPIC_REQUEST_TIMEOUT" envDefault:"30s"`
	CheckTimeout    time.Duration `env:"EPIC_CHECK_TIMEOUT" envDefault:"3s"`
	CheckCacheTTL   time.Duration `env:"EPIC_CHECK_CACHE_TTL" envDefault:"10m"`
	CheckRatePerSec float64       `env:"EPIC_CHECK_RATE" envDefault:"10"`
	LogFieldMaxLen  int           `env:"EPIC_LOG_FIELD_MAX_LEN" envDefault:"1024"`
	LogResponseBody bool          `env:"EPIC_LOG_RESPONSE_BODY" envDefault:"false"`
}
