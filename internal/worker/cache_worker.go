package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/events"
)

// ProductInvalidator evicts a cached product entry.
type ProductInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// StartCacheWorker subscribes catalog mutation events to cache eviction.
func StartCacheWorker(dispatcher events.Dispatcher, cache ProductInvalidator, logger *zap.Logger) {
	if dispatcher == nil || cache == nil {
		return
	}

	evict := func(ctx context.Context, event events.Event) error {
		cache.Invalidate(ctx, event.SubjectID)
		logger.Debug("evicted product cache entry", zap.String("product_id", event.SubjectID))
		return nil
	}

	dispatcher.Subscribe(events.EventProductUpdated, evict)
	dispatcher.Subscribe(events.EventProductDeleted, evict)
}
