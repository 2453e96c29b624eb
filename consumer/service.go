package consumer

import (
	"context"
	"sync"

	log "github.com/andrewnester/sqslisten/chassis/logging"

	"github.com/andrewnester/sqslisten"
	"github.com/andrewnester/sqslisten/chassis/storage"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// Config ...
type Config struct {
	Listener   *sqslisten.SQSListen
	Receive    *sqs.ReceiveMessageInput
	Repository storage.MessageRepository
	Expiration int
}

// Run starts the queue listener and the archive janitor. Both stop
// when ctx is canceled.
func Run(ctx context.Context, cfg *Config, group *sync.WaitGroup) {
	log.WithFields(log.Fields{
		"event": "start_service",
	}).Info("starting consumer")
	handle := cfg.Listener.Listen(cfg.Receive, NewHandler(cfg.Repository))
	group.Add(1)
	go func() {
		<-ctx.Done()
		handle.Stop()
		log.WithFields(log.Fields{
			"event": "ctx_canceled",
		}).Info("listener stopped")
		group.Done()
	}()
	group.Add(1)
	go janitor(ctx, cfg, group)
}
