// Package sqslisten is a simple listener for an AWS SQS queue.
//
// It polls the queue on a fixed interval derived from the request's
// long-poll wait time and calls the passed handler for every received
// message. Once a message is handled (whether or not the handler
// returns an error) it is removed from the queue.
//
// Usage:
//
//	listener := sqslisten.New("us-east-1")
//	handle := listener.Listen(&sqs.ReceiveMessageInput{
//		QueueUrl: aws.String("<queue_url>"),
//	}, func(msg *sqs.Message, err error) error {
//		if msg != nil {
//			fmt.Printf("Message received: %v\n", msg)
//		}
//		if err != nil {
//			fmt.Printf("Error received: %v\n", err)
//		}
//		return nil
//	})
//
//	time.Sleep(100 * time.Second)
//	handle.Stop()
package sqslisten
