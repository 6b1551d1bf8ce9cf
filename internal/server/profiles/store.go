// Package profiles serves the profile RPCs and provides the server-side
// Profile Store backends: Postgres JSONB documents, Redis key paths, S3
// objects and an in-memory map.
package profiles

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/dmitrijs2005/onboarding/internal/server/config"
	"github.com/redis/go-redis/v9"
)

// Backends carries the connections a backend may need. Only the one the
// selected backend uses has to be set.
type Backends struct {
	DB      dbx.DBTX
	Redis   redis.UniversalClient
	Objects ObjectAPI
	Bucket  string
}

// NewStore returns the profile.Store named by kind.
func NewStore(kind string, b Backends) (profile.Store, error) {
	switch kind {
	case config.ProfileBackendDocument:
		if b.DB == nil {
			return nil, fmt.Errorf("profile backend %q needs a database", kind)
		}
		return NewDocumentStore(b.DB), nil
	case config.ProfileBackendKeyPath:
		if b.Redis == nil {
			return nil, fmt.Errorf("profile backend %q needs redis", kind)
		}
		return NewKeyPathStore(b.Redis), nil
	case config.ProfileBackendObject:
		if b.Objects == nil || b.Bucket == "" {
			return nil, fmt.Errorf("profile backend %q needs an s3 bucket", kind)
		}
		return NewObjectStore(b.Objects, b.Bucket), nil
	case config.ProfileBackendMemory:
		return profile.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown profile backend %q", kind)
	}
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// NewS3Client builds an S3 client for a MinIO-style endpoint with static
// credentials and path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}
