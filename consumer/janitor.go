package consumer

import (
	"context"
	"sync"
	"time"

	log "github.com/andrewnester/sqslisten/chassis/logging"

	"github.com/andrewnester/sqslisten/chassis/chaos"
)

func janitor(ctx context.Context, cfg *Config, group *sync.WaitGroup) {
	log.WithFields(log.Fields{
		"event": "start_janitor",
	}).Info("starting janitor with ", cfg.Expiration, "s expiration time")
	repo := cfg.Repository
	for {
		select {
		case <-ctx.Done():
			log.WithFields(log.Fields{
				"event":  "ctx_canceled",
				"worker": "janitor",
			}).Info("exit goroutine")
			group.Done()
			return
		case <-time.After(time.Second * 5):
			cleaned, err := repo.DeleteExpired(cfg.Expiration)
			err = chaos.Inject(err)
			if err != nil {
				log.WithFields(log.Fields{
					"event":  "clean_table_failed",
					"worker": "janitor",
				}).Error(err)
			}
			log.WithFields(log.Fields{
				"event":  "clean_table",
				"worker": "janitor",
			}).Info("cleaned rows:", cleaned)
		}
	}
}
