package consumer

import (
	log "github.com/andrewnester/sqslisten/chassis/logging"

	"github.com/andrewnester/sqslisten"
	"github.com/andrewnester/sqslisten/chassis/envelope"
	"github.com/andrewnester/sqslisten/chassis/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// NewHandler builds the listener handler: decode the envelope, archive
// the message, count it. The listener acknowledges the message whatever
// this returns, so a failed archive only means a redelivered message
// lands in the broken/duplicate paths below.
func NewHandler(repo storage.MessageRepository) sqslisten.Handler {
	return func(msg *sqs.Message, err error) error {
		if err != nil {
			receiveErrors.Inc()
			log.WithFields(log.Fields{
				"event": "receive_failed",
			}).Error(err)
			return nil
		}
		env := &envelope.Envelope{}
		if err := env.FromJSON(aws.StringValue(msg.Body)); err != nil {
			brokenMessages.Inc()
			log.WithFields(log.Fields{
				"event": "receive_broken_message",
			}).Error(err)
			return err
		}
		messagesReceived.Inc()
		log.WithFields(log.Fields{
			"event":     "receive_message",
			"messageID": aws.StringValue(msg.MessageId),
			"method":    env.Method,
		}).Info(env)
		record := &storage.Record{
			MessageID: aws.StringValue(msg.MessageId),
			Method:    env.Method,
			Params:    env.Params,
		}
		if err := repo.Save(record); err != nil {
			if err.Error() == "duplicated message" {
				log.WithFields(log.Fields{
					"event":     "duplicated_message",
					"messageID": record.MessageID,
				}).Warn("message already archived")
				return nil
			}
			archiveErrors.Inc()
			log.WithFields(log.Fields{
				"event":     "archive_failed",
				"messageID": record.MessageID,
			}).Error(err)
			return err
		}
		messagesArchived.Inc()
		log.WithFields(log.Fields{
			"event":     "archive_message",
			"messageID": record.MessageID,
		}).Debug("message archived")
		return nil
	}
}
