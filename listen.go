package sqslisten

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// SQSAPI is the slice of the SQS client the listener needs.
type SQSAPI interface {
	ReceiveMessage(*sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(*sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
}

var _ SQSAPI = (*sqs.SQS)(nil)

// Handler is called once per received message with (msg, nil), or once
// per failed poll with (nil, err). Its return value is observed and
// discarded: a handler error neither prevents acknowledgment nor stops
// the poll loop.
type Handler func(msg *sqs.Message, err error) error

// Config - explicit client construction parameters
type Config struct {
	Region             string
	CredentialsFile    string
	CredentialsProfile string
	Retries            int
}

// SQSListen polls one queue and feeds a handler.
//
// Concurrent Listen calls on the same SQSListen are not supported; use
// one SQSListen per queue.
type SQSListen struct {
	client   SQSAPI
	queueURL string
}

// New returns a listener backed by a default session for the region.
func New(region string) *SQSListen {
	ssn := session.New(&aws.Config{
		Region: aws.String(region),
	})
	return &SQSListen{client: sqs.New(ssn)}
}

// NewWithConfig returns a listener with shared-file credentials and
// a retry limit for the underlying client.
func NewWithConfig(cfg Config) *SQSListen {
	ssn := session.New(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewSharedCredentials(cfg.CredentialsFile, cfg.CredentialsProfile),
		MaxRetries:  aws.Int(cfg.Retries),
	})
	return &SQSListen{client: sqs.New(ssn)}
}

// NewWithClient returns a listener on an already constructed client.
func NewWithClient(client SQSAPI) *SQSListen {
	return &SQSListen{client: client}
}

// Listen starts polling the queue named by input.QueueUrl and returns
// immediately. The input is copied once here and forwarded unchanged on
// every tick. Every received message is passed to the handler and then
// deleted from the queue; a failed poll is passed to the handler as an
// error. Poll failures never stop the loop.
func (l *SQSListen) Listen(input *sqs.ReceiveMessageInput, handler Handler) *ListenHandle {
	l.queueURL = aws.StringValue(input.QueueUrl)
	in := *input
	interval := pollInterval(&in)
	handle := &ListenHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	log.WithFields(log.Fields{
		"event":    "listen_start",
		"queue":    l.queueURL,
		"interval": interval,
	}).Debug("start polling")
	go l.run(&in, handler, interval, handle)
	return handle
}

// run drains a single ticker, so ticks never overlap: a slow handler
// delays the next poll instead of racing it.
func (l *SQSListen) run(input *sqs.ReceiveMessageInput, handler Handler, interval time.Duration, handle *ListenHandle) {
	defer close(handle.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-handle.stop:
			log.WithFields(log.Fields{
				"event": "listen_stop",
				"queue": l.queueURL,
			}).Debug("stop polling")
			return
		case <-ticker.C:
			l.poll(input, handler)
		}
	}
}

func (l *SQSListen) poll(input *sqs.ReceiveMessageInput, handler Handler) {
	response, err := l.client.ReceiveMessage(input)
	if err != nil {
		_ = handler(nil, err)
		return
	}
	l.processResponse(response, handler)
}

func (l *SQSListen) processResponse(response *sqs.ReceiveMessageOutput, handler Handler) {
	for _, message := range response.Messages {
		_ = handler(message, nil)
		l.ackMessage(message)
	}
}

// ackMessage removes a handled message from the queue. A message with
// no receipt handle cannot be deleted and is skipped. Delete errors are
// swallowed: the queue's own visibility timeout redelivers the message.
func (l *SQSListen) ackMessage(message *sqs.Message) {
	if message.ReceiptHandle == nil {
		return
	}
	_, err := l.client.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      aws.String(l.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"event": "delete_message_failed",
			"queue": l.queueURL,
		}).Debug(err)
		return
	}
	log.WithFields(log.Fields{
		"event": "delete_message",
		"queue": l.queueURL,
	}).Debug(aws.StringValue(message.MessageId))
}
