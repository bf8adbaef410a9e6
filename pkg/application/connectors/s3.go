package connectors

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/samber/lo"
)

type S3 struct {
	value           *s3.Client
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
	Bucket          string
	init            sync.Once
}

func (c *S3) Client(ctx context.Context) *s3.Client {
	c.init.Do(func() {
		awsConfig := lo.Must(config.LoadDefaultConfig(ctx,
			config.WithRegion(c.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				c.AccessKeyID,
				c.SecretAccessKey,
				"",
			)),
		))

		c.value = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if c.EndpointURL != "" {
				o.BaseEndpoint = aws.String(c.EndpointURL)
				o.UsePathStyle = true
			}
		})

		lo.Must(c.value.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: aws.String(c.Bucket),
		}))

		logger(ctx).Info(
			"s3 connected",
			slog.String("bucket", c.Bucket),
			slog.String("region", c.Region),
		)
	})

	return c.value
}
