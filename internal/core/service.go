package core

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/minicrm/internal/config"
)

// Service provides the business logic for MiniCRM. It owns no state
// besides the injected store and the import limiter.
type Service struct {
	store         Store
	limiter       *UploadLimiter
	importTimeout time.Duration
}

// NewService creates a Service over store. A nil cfg uses defaults.
func NewService(store Store, cfg *config.Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("core: nil store")
	}

	maxConcurrent := DefaultMaxConcurrentUploads
	maxWait := DefaultMaxWaitTime
	importTimeout := DefaultImportTimeout
	if cfg != nil {
		maxConcurrent = cfg.Upload.MaxConcurrent
		maxWait = cfg.Upload.MaxWaitTime
		if cfg.Upload.Timeout > 0 {
			importTimeout = cfg.Upload.Timeout
		}
	}

	return &Service{
		store:         store,
		limiter:       NewUploadLimiter(maxConcurrent, maxWait),
		importTimeout: importTimeout,
	}, nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// UploadLimiterStatus returns the current state of the import limiter.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until all running imports finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
