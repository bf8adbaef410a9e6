package config

type Redis struct {
	Address   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Username  string `env:"REDIS_USERNAME"`
	Password  string `env:"REDIS_PASSWORD" json:"-"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize  int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"epic_notifier:"`
}
