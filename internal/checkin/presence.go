package checkin

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll/internal/events"

	"github.com/redis/go-redis/v9"
)

const (
	presenceKeyPrefix = "presence:"
	presenceTTL       = 24 * time.Hour

	PresenceIn    = "IN"
	PresenceOut   = "OUT"
	PresenceLunch = "LUNCH"
)

func presenceKey(companyID string) string {
	return presenceKeyPrefix + companyID
}

// PresenceEntry is one worker's slot on the company's who-is-in board.
type PresenceEntry struct {
	WorkerID string    `json:"worker_id"`
	Status   string    `json:"status"`
	Since    time.Time `json:"since"`
}

// PresenceBoard keeps a per-company Redis hash of who is currently
// clocked in. The consumer binary feeds it from check-in events; the API
// only ever reads it.
type PresenceBoard struct {
	rdb *redis.Client
}

func NewPresenceBoard(rdb *redis.Client) *PresenceBoard {
	return &PresenceBoard{rdb: rdb}
}

// Apply folds one check-in event into the board. Unknown actions are
// ignored so event-schema growth never breaks the consumer.
func (b *PresenceBoard) Apply(ctx context.Context, ev events.CheckInRecordedEvent) error {
	var status string
	switch Action(ev.Action) {
	case ActionClockIn, ActionLunchIn:
		status = PresenceIn
	case ActionLunchOut:
		status = PresenceLunch
	case ActionClockOut:
		status = PresenceOut
	default:
		return nil
	}

	entry, err := json.Marshal(PresenceEntry{
		WorkerID: ev.WorkerID,
		Status:   status,
		Since:    ev.Timestamp,
	})
	if err != nil {
		return err
	}

	key := presenceKey(ev.CompanyID)
	pipe := b.rdb.TxPipeline()
	pipe.HSet(ctx, key, ev.WorkerID, entry)
	pipe.Expire(ctx, key, presenceTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Board returns every worker's current slot for a company.
func (b *PresenceBoard) Board(ctx context.Context, companyID string) ([]PresenceEntry, error) {
	raw, err := b.rdb.HGetAll(ctx, presenceKey(companyID)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]PresenceEntry, 0, len(raw))
	for _, v := range raw {
		var e PresenceEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
