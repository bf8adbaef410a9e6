package config

type S3 struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID" json:"-"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" json:"-"`
	EndpointURL     string `env:"S3_ENDPOINT_URL"`
	Prefix          string `env:"S3_PREFIX" envDefault:"epic_notifier/"`
}
