package main

import (
	"net/http"
	"strings"

	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/middleware"
	"github.com/campusboard/backend/pkg/kafka"
	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startNotification(*cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx)
	hub := notification.NewHub()
	consumer := notification.NewConsumer(s.ctx, s.notificationRepo, hub)

	subscriber, err := kafka.NewSubscriber(
		cfg.Kafka.ConsumerGroup,
		strings.Split(cfg.Kafka.Addr, ","),
		[]string{cfg.Kafka.NotificationTopic},
		consumer.Subscribe,
	)
	if err != nil {
		return err
	}
	defer subscriber.Stop(s.ctx)

	go func() {
		if err := subscriber.Subscribe(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Notification subscriber stopped: %v", err)
		}
	}()

	defaultRouter := router.New(s.ctx)
	defaultRouter.Before(middleware.WithStartTime(), middleware.Identify())
	defaultRouter.AddCloser(middleware.Logger())
	router.Websocket(defaultRouter, "/", hub.ServeWebsocket)

	httpSrv := &http.Server{
		Addr:    cfg.NotificationServer.Address(),
		Handler: defaultRouter.Handler(cfg.NotificationServer),
	}

	xcontext.Logger(s.ctx).Infof("Starting ws notification on port: %s", cfg.NotificationServer.Port)
	return serve(s.ctx, httpSrv)
}
