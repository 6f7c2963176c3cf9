package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/checkin"
	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCheckInRecorded feeds the per-company presence board from
// check-in events. Decode failures are committed and skipped so one bad
// message can never wedge the group; board write failures are retried by
// not committing.
func ConsumeCheckInRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	board *checkin.PresenceBoard,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.checkin_presence")
	log.Info("check-in presence consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("check-in presence consumer stopped")
				return
			}
			log.Error("fetch check-in message failed", zap.Error(err))
			continue
		}

		var event events.CheckInRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode check-in event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := board.Apply(ctx, event); err != nil {
			log.Error("apply presence update failed",
				zap.String("worker_id", event.WorkerID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit check-in message failed", zap.Error(err))
			continue
		}

		log.Info("presence board updated",
			zap.String("worker_id", event.WorkerID),
			zap.String("action", event.Action),
		)
	}
}
