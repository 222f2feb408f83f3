package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix names the dead-letter list of a queue: dlq:jobs:activity.
const DLQPrefix = "dlq:"

// DeadLetter is a job the pool gave up on.
type DeadLetter struct {
	Queue    string    `json:"queue"`
	Job      Job       `json:"job"`
	Raw      string    `json:"raw,omitempty"` // set when the job could not be decoded
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failedAt"`
}

// deadLetter parks job on the queue's DLQ. Push errors are logged only; the
// activity is then lost, which the log line records.
func deadLetter(ctx context.Context, rdb *redis.Client, queue string, job Job, raw, reason string) {
	data, err := json.Marshal(DeadLetter{Queue: queue, Job: job, Raw: raw, Reason: reason, FailedAt: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).RawJSON("job", data).Msg("dlq: push failed, job dropped")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Int("attempts", job.Attempts).
		Str("reason", reason).
		Msg("dlq: job dead-lettered")
}

// DLQLength returns the number of parked jobs of queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// Replay moves up to limit dead letters back onto queue, oldest first, with a
// fresh attempt count. It returns how many were moved.
func Replay(ctx context.Context, rdb *redis.Client, queue string, limit int) (int, error) {
	moved := 0
	for moved < limit {
		raw, err := rdb.RPop(ctx, DLQPrefix+queue).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return moved, err
		}
		var dl DeadLetter
		if err := json.Unmarshal([]byte(raw), &dl); err != nil || dl.Job.Type == "" {
			log.Error().Err(err).Str("queue", queue).Msg("dlq: dropping unreadable entry")
			continue
		}
		dl.Job.Attempts = 0
		if err := push(ctx, rdb, queue, dl.Job); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}
