package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"consultly/models"
	"consultly/services/tasks"
	"consultly/utils"
)

// AsynqNotifier enqueues booking events onto the Redis-backed task queue.
// Delivery work happens in the worker process; enqueueing is the only thing
// the request path pays for.
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) NotifyBookingEvent(ctx context.Context, event models.BookingEvent) error {
	task, err := tasks.NewBookingEventTask(event)
	if err != nil {
		return err
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue booking event: %w", err)
	}
	utils.GetLogger().Debug("booking event enqueued",
		zap.String("taskId", info.ID),
		zap.String("bookingId", event.BookingID))
	return nil
}
