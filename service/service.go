package service

import "context"

type Service interface {
	// Run starts the service and blocks until ctx is cancelled or the service fails.
	Run(ctx context.Context) error
}
