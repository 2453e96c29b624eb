package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/andrewnester/sqslisten/chassis/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrewnester/sqslisten"
	"github.com/andrewnester/sqslisten/chassis/config"
	"github.com/andrewnester/sqslisten/chassis/storage"
	"github.com/andrewnester/sqslisten/consumer"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
)

func main() {
	appCfg, err := config.Read()
	if err != nil {
		log.WithFields(log.Fields{
			"event": "config_read_failed",
		}).Fatal(err)
	}
	log.Init("consumer", appCfg.Consumer.LogLevel)
	log.WithFields(log.Fields{
		"event": "init_service",
	}).Info("service initialized")

	listener := sqslisten.NewWithConfig(sqslisten.Config{
		Region:             appCfg.AWS.Region,
		CredentialsFile:    appCfg.AWS.CredentialsFile,
		CredentialsProfile: appCfg.AWS.CredentialsProfile,
		Retries:            appCfg.AWS.Retries,
	})
	repository, err := storage.InitPGRepository(storage.Config{
		DSN: appCfg.Storage.DSN,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"event": "storage_init_failed",
		}).Fatal(err)
	}
	receive := &sqs.ReceiveMessageInput{
		QueueUrl:        aws.String(fmt.Sprintf("%s/%s", appCfg.Consumer.Queue.URL, appCfg.Consumer.Queue.Name)),
		WaitTimeSeconds: appCfg.Consumer.WaitTimeSeconds,
	}
	if appCfg.Consumer.MaxMessages > 0 {
		receive.MaxNumberOfMessages = aws.Int64(appCfg.Consumer.MaxMessages)
	}
	if appCfg.Consumer.VisibilityTimeout > 0 {
		receive.VisibilityTimeout = aws.Int64(appCfg.Consumer.VisibilityTimeout)
	}
	cfg := &consumer.Config{
		Listener:   listener,
		Receive:    receive,
		Repository: repository,
		Expiration: appCfg.Consumer.Expiration,
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	var group sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	consumer.Run(ctx, cfg, &group)
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":2112",
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen: %s\n", err)
		}
	}()
	<-done
	log.WithFields(log.Fields{
		"event": "ctx_cancel",
	}).Info("received syscall")
	cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server Shutdown Failed:%+v", err)
	}
	group.Wait()
}
