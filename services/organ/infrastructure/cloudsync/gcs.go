package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// GCS keeps the document in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	key    string
}

// NewGCS creates a GCS driver. An empty credentialsFile uses the default
// application credentials.
func NewGCS(ctx context.Context, bucket, key, credentialsFile string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket required")
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, key: key}, nil
}

// Name implements repositories.CloudSync.
func (g *GCS) Name() string { return "gcs" }

// Pull implements repositories.CloudSync.
func (g *GCS) Pull(ctx context.Context) (*models.AppState, bool, error) {
	r, err := g.client.Bucket(g.bucket).Object(g.key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("gcs: open gs://%s/%s: %w", g.bucket, g.key, err)
	}
	defer r.Close() //nolint:errcheck

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("gcs: read: %w", err)
	}
	s, err := models.DecodeState(data)
	if err != nil {
		return nil, false, fmt.Errorf("gcs: %w", err)
	}
	return s, true, nil
}

// Push implements repositories.CloudSync.
func (g *GCS) Push(ctx context.Context, state *models.AppState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}

	w := g.client.Bucket(g.bucket).Object(g.key).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache, no-store, must-revalidate"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: write gs://%s/%s: %w", g.bucket, g.key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: close writer for gs://%s/%s: %w", g.bucket, g.key, err)
	}
	return nil
}

// Close releases the client.
func (g *GCS) Close() error {
	return g.client.Close()
}
