package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueActivity = "jobs:activity"

	JobActivity = "activity"

	// MaxAttempts is how many times a job runs before it goes to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error schedules a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueActivity hands an activity record to the async writer.
func (d *Dispatcher) EnqueueActivity(ctx context.Context, a *model.Activity) error {
	return d.enqueue(ctx, QueueActivity, JobActivity, a)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Pool is a set of running workers.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	queues   []string
	wg       sync.WaitGroup
}

// StartWorkerPool launches numWorkers goroutines consuming the queues of the
// given handlers, keyed by queue name. Workers stop when ctx is cancelled;
// call Wait to block until the in-flight jobs have finished.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers}
	for q := range handlers {
		p.queues = append(p.queues, q)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", p.queues).Msg("worker pool started")
	return p
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("queue pop failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

// process runs one job on a detached context, so a popped job finishes even
// during shutdown. Failures are requeued until MaxAttempts, then dead-lettered.
func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		deadLetter(context.WithoutCancel(ctx), p.rdb, queue, Job{}, raw, "malformed job: "+err.Error())
		return
	}
	handler, ok := p.handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler for queue")
		return
	}

	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	job.Attempts++
	err := handler(jobCtx, job.Payload)
	if err == nil {
		return
	}
	if job.Attempts >= MaxAttempts {
		deadLetter(jobCtx, p.rdb, queue, job, "", err.Error())
		return
	}
	log.Warn().Err(err).Str("queue", queue).Int("attempt", job.Attempts).Msg("job failed, requeueing")
	if pushErr := push(jobCtx, p.rdb, queue, job); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("requeue failed")
	}
}
