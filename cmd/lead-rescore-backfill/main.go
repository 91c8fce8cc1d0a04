package main

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"leadcapture_backend/internal/adapters"
	"leadcapture_backend/internal/leads/domain"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/db"
	"leadcapture_backend/platform/logger"
)

const workerCount = 8

// Recomputes every stored lead's score with the current scoring rules.
// Run after the scoring weights change; the dashboard rescore endpoint
// does the same thing but this version parallelizes over the whole table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead rescore backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)
	scorer := adapters.LeadScorerAdapter{}

	var processed, updated atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	work := make(chan domain.Lead)

	for range workerCount {
		group.Go(func() error {
			for lead := range work {
				processed.Add(1)
				newScore := scorer.Score(lead.Answers)
				if newScore == lead.LeadScore {
					continue
				}
				if err := repo.UpdateScore(groupCtx, lead.ID, newScore, scorer.StatusFor(newScore)); err != nil {
					return err
				}
				updated.Add(1)
			}
			return nil
		})
	}

	group.Go(func() error {
		defer close(work)
		return repo.IterateForRescore(groupCtx, func(lead domain.Lead) error {
			select {
			case work <- lead:
				return nil
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		})
	})

	if err := group.Wait(); err != nil {
		log.Error("backfill failed", "error", err, "processed", processed.Load(), "updated", updated.Load())
		panic("backfill failed: " + err.Error())
	}

	log.Info("backfill complete", "processed", processed.Load(), "updated", updated.Load())
}
