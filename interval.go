package sqslisten

import (
	"time"

	"github.com/aws/aws-sdk-go/service/sqs"
)

// defaultInterval is used when the request carries no long-poll wait.
const defaultInterval = time.Second

// pollInterval derives the polling period from the request's long-poll
// wait time: one second more than the server-side wait, so the next
// poll is never scheduled before the current one could have returned.
func pollInterval(input *sqs.ReceiveMessageInput) time.Duration {
	if input.WaitTimeSeconds == nil {
		return defaultInterval
	}
	return time.Duration(*input.WaitTimeSeconds+1) * time.Second
}
