package producer

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	log "github.com/andrewnester/sqslisten/chassis/logging"

	"github.com/andrewnester/sqslisten/chassis/chaos"
	"github.com/andrewnester/sqslisten/chassis/envelope"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// SendAPI is the slice of the SQS client the producer needs.
type SendAPI interface {
	SendMessage(*sqs.SendMessageInput) (*sqs.SendMessageOutput, error)
}

var _ SendAPI = (*sqs.SQS)(nil)

// Config ...
type Config struct {
	Queue    SendAPI
	QueueURL string
	Rate     time.Duration
	Workers  int
}

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func worker(ctx context.Context, cfg *Config, workerID int, group *sync.WaitGroup) {
	cli := cfg.Queue
	sent := 0
	for {
		select {
		case <-ctx.Done():
			log.WithFields(log.Fields{
				"event":  "ctx_canceled",
				"worker": workerID,
			}).Info("exit goroutine")
			group.Done()
			return
		case <-time.After(cfg.Rate):
			sent++
			message := envelope.Envelope{
				Method: "archive",
				Params: map[string]string{"payload": randSeq(10)},
				ID:     strconv.Itoa(workerID) + "-" + strconv.Itoa(sent),
			}
			jsonMsg, err := message.JSON()
			err = chaos.Inject(err)
			if err != nil {
				log.WithFields(log.Fields{
					"event":  "message_serialize_failed",
					"worker": workerID,
				}).Error(err)
				continue
			}
			_, err = cli.SendMessage(&sqs.SendMessageInput{
				MessageBody:  aws.String(jsonMsg),
				QueueUrl:     aws.String(cfg.QueueURL),
				DelaySeconds: aws.Int64(0),
			})
			err = chaos.Inject(err)
			if err != nil {
				log.WithFields(log.Fields{
					"event":  "send_failed",
					"worker": workerID,
				}).Error(err)
				continue
			}
			log.WithFields(log.Fields{
				"event":  "send_message",
				"worker": workerID,
			}).Debug(message.ID)
		}
	}
}

// Run ...
func Run(ctx context.Context, cfg *Config, group *sync.WaitGroup) {
	log.WithFields(log.Fields{
		"event": "start_service",
	}).Info("starting ", cfg.Workers, " workers")
	for wrk := 1; wrk <= cfg.Workers; wrk++ {
		group.Add(1)
		go worker(ctx, cfg, wrk, group)
	}
}
