package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/config"
)

// RemoteSyncer pulls curated fit documents from an S3-compatible bucket
// (Cloudflare R2 in production) into the local catalog directory before
// a load. The local directory remains the source the loader reads; the
// syncer only refreshes it.
type RemoteSyncer struct {
	client *s3.Client
	bucket string
	prefix string
	log    zerolog.Logger
}

// NewRemoteSyncer builds a syncer from the remote catalog settings.
func NewRemoteSyncer(ctx context.Context, rc *config.RemoteCatalogConfig, log zerolog.Logger) (*RemoteSyncer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(rc.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(rc.AccessKey, rc.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure remote catalog client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &rc.Endpoint
		o.UsePathStyle = true
	})

	return &RemoteSyncer{
		client: client,
		bucket: rc.Bucket,
		prefix: rc.Prefix,
		log:    log.With().Str("component", "catalog_sync").Logger(),
	}, nil
}

// Sync downloads every YAML document under the configured prefix into
// destDir. Returns the number of documents fetched. A failed download
// aborts the sync so the loader never sees a half-refreshed directory
// mixed from two bucket states.
func (s *RemoteSyncer) Sync(ctx context.Context, destDir string) (int, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	fetched := 0
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
		Prefix: &s.prefix,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fetched, fmt.Errorf("failed to list remote catalog: %w", err)
		}

		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			key := *obj.Key
			if !strings.HasSuffix(key, ".yaml") && !strings.HasSuffix(key, ".yml") {
				continue
			}

			if err := s.download(ctx, key, destDir); err != nil {
				return fetched, err
			}
			fetched++
		}
	}

	s.log.Info().Int("documents", fetched).Str("bucket", s.bucket).Msg("Remote catalog synced")
	return fetched, nil
}

func (s *RemoteSyncer) download(ctx context.Context, key, destDir string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	name := filepath.Base(key)
	if err := os.WriteFile(filepath.Join(destDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
