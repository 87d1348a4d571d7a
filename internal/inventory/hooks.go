package inventory

import (
	"context"

	"fridge-service/internal/domain"
	"fridge-service/internal/events"
	"fridge-service/pkg/middleware"

	"go.uber.org/zap"
)

// PublishHook turns applied mutations into domain events. Publish failures are
// logged and otherwise ignored. It runs under the store lock, so a publisher
// that backs off between retries delays every other store call.
func PublishHook(publisher events.EventPublisher, logger *zap.Logger) Hook {
	return func(ctx context.Context, m Mutation, _ domain.Collection) {
		event := eventFor(m)
		if event == nil {
			return
		}
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish event",
				zap.String("event-type", events.EventType(event)),
				zap.String("item_id", m.Item.ID.String()),
				zap.Error(err),
			)
		}
	}
}

func eventFor(m Mutation) interface{} {
	switch m.Kind {
	case MutationAdd:
		return events.ItemAddedEvent{
			ItemID:     m.Item.ID,
			Name:       m.Item.Name,
			Quantity:   m.Item.Quantity,
			Unit:       m.Item.Unit,
			Category:   string(m.Item.Category),
			AddedDate:  m.Item.AddedDate,
			OccurredAt: m.At,
		}
	case MutationAdjust:
		return events.QuantityAdjustedEvent{
			ItemID:     m.Item.ID,
			Name:       m.Item.Name,
			Delta:      m.Delta,
			NewTotal:   m.Item.Quantity,
			OccurredAt: m.At,
		}
	case MutationTrash:
		return events.ItemTrashedEvent{ItemID: m.Item.ID, Name: m.Item.Name, OccurredAt: m.At}
	case MutationRestore:
		return events.ItemRestoredEvent{ItemID: m.Item.ID, Name: m.Item.Name, OccurredAt: m.At}
	case MutationPurge:
		return events.ItemPurgedEvent{ItemID: m.Item.ID, Name: m.Item.Name, OccurredAt: m.At}
	}
	return nil
}

// LogHook writes every applied mutation to the logger, tagged with the
// request id when the mutation came in over HTTP
func LogHook(logger *zap.Logger) Hook {
	return func(ctx context.Context, m Mutation, items domain.Collection) {
		fields := []zap.Field{
			zap.String("mutation", string(m.Kind)),
			zap.String("item_id", m.Item.ID.String()),
			zap.String("name", m.Item.Name),
			zap.Int("quantity", m.Item.Quantity),
			zap.Int("items", len(items)),
		}
		if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		logger.Info("Fridge updated", fields...)
	}
}
