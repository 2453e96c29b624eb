package main

import (
	"fmt"
	"time"

	"github.com/andrewnester/sqslisten"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
)

func main() {
	listener := sqslisten.New("us-east-1")
	handle := listener.Listen(&sqs.ReceiveMessageInput{
		QueueUrl: aws.String("<queue_url>"),
	}, func(msg *sqs.Message, err error) error {
		if msg != nil {
			fmt.Printf("Message received: %v\n", msg)
		}
		if err != nil {
			fmt.Printf("Error received: %v\n", err)
		}
		return nil
	})

	time.Sleep(100 * time.Second)
	handle.Stop()
}
