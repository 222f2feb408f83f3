// Command replaydlq moves dead-lettered activity jobs back onto the live queue.
// Usage: go run ./cmd/replaydlq [-limit 100]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	limit := flag.Int("limit", 100, "maximum number of jobs to replay")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	before, err := worker.DLQLength(ctx, rdb, worker.QueueActivity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read dead-letter queue")
	}
	moved, err := worker.Replay(ctx, rdb, worker.QueueActivity, *limit)
	if err != nil {
		log.Fatal().Err(err).Int("moved", moved).Msg("replay failed")
	}
	log.Info().Int64("parked", before).Int("moved", moved).Msg("replay complete")
}
