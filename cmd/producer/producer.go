package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/andrewnester/sqslisten/chassis/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrewnester/sqslisten/chassis/config"
	"github.com/andrewnester/sqslisten/producer"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
)

func main() {
	appCfg, err := config.Read()
	if err != nil {
		log.WithFields(log.Fields{
			"event": "config_read_failed",
		}).Fatal(err)
	}
	log.Init("producer", appCfg.Producer.LogLevel)
	log.WithFields(log.Fields{
		"event": "init_service",
	}).Info("service initialized")

	ssn := session.New(&aws.Config{
		Region:      aws.String(appCfg.AWS.Region),
		Credentials: credentials.NewSharedCredentials(appCfg.AWS.CredentialsFile, appCfg.AWS.CredentialsProfile),
		MaxRetries:  aws.Int(appCfg.AWS.Retries),
	})
	cfg := &producer.Config{
		Queue:    sqs.New(ssn),
		QueueURL: fmt.Sprintf("%s/%s", appCfg.Producer.Queue.URL, appCfg.Producer.Queue.Name),
		Rate:     time.Duration(appCfg.Producer.RateMs) * time.Millisecond,
		Workers:  appCfg.Producer.Workers,
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	var group sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	producer.Run(ctx, cfg, &group)
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":2113",
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
