// Package cloudsync mirrors the state document to an object store. The copy
// is never authoritative: it is pushed after commits and pulled only into an
// empty local store.
package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
)

// Driver is a CloudSync that owns a client connection.
type Driver interface {
	repositories.CloudSync
	Close() error
}

// ObjectKey returns the object name of the state document:
// "<prefix>/<project>/organ_maintenance_state.json".
func ObjectKey(prefix, project string) string {
	return path.Join(prefix, project, models.StateKey+".json")
}

// New returns the driver named by cfg.CloudSyncDriver, or nil when sync is
// disabled.
func New(ctx context.Context, cfg *config.Config) (Driver, error) {
	key := ObjectKey(cfg.CloudSyncPrefix, cfg.CloudSyncProject)

	switch cfg.CloudSyncDriver {
	case "":
		return nil, nil
	case config.CloudSyncGCS:
		return NewGCS(ctx, cfg.CloudSyncBucket, key, cfg.GCSCredentialsFile)
	case config.CloudSyncS3:
		return NewS3(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.CloudSyncBucket,
			Key:             key,
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioRootUser,
			SecretAccessKey: cfg.MinioRootPassword,
		})
	default:
		return nil, fmt.Errorf("unknown cloud sync driver %q", cfg.CloudSyncDriver)
	}
}

func encode(state *models.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}
