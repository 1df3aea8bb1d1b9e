package main

import (
	"context"
	"expvar"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hookrelay/internal"
	"hookrelay/internal/render"
	"hookrelay/pkg/storage"
	"hookrelay/pkg/storage/hooks"
	"hookrelay/webhook"
)

func main() {
	logger := internal.NewLogger("server")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	config, err := internal.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ruleEngine, err := internal.NewRuleEngine(internal.RulesConfig{
		Rules:  config.Rules,
		Strict: config.RulesStrict,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("compile rules: %v", err)
	}

	publisher, err := internal.NewPublisher(config.Watermill)
	if err != nil {
		logger.Fatalf("publisher: %v", err)
	}
	defer publisher.Close()

	var hookStore storage.HookStore
	if config.Storage.DSN != "" {
		store, err := hooks.Open(hooks.Config{
			Driver:      config.Storage.Driver,
			DSN:         config.Storage.DSN,
			Dialect:     config.Storage.Dialect,
			Table:       config.Storage.Table,
			AutoMigrate: config.Storage.AutoMigrate,
		})
		if err != nil {
			logger.Fatalf("hook store: %v", err)
		}
		defer store.Close()
		hookStore = store
		logger.Printf("hook store enabled (%s)", config.Storage.Driver)
	}

	shortener := render.NewShortener(
		config.Shortener.Endpoint,
		time.Duration(config.Shortener.TimeoutMS)*time.Millisecond,
		internal.NewLogger("shortener"),
	)

	handler := webhook.NewGitHubHandler(webhook.GitHubHandlerConfig{
		Pipeline:     render.NewPipeline(shortener),
		Store:        hookStore,
		Defaults:     render.ParseHookConfig(config.Hook),
		Rules:        ruleEngine,
		Publisher:    publisher,
		Logger:       internal.NewLogger("webhook"),
		BasePath:     config.Webhook.Path,
		MaxBodyBytes: config.Server.MaxBodyBytes,
		DefaultTopic: config.Webhook.DefaultTopic,
	})

	mux := http.NewServeMux()
	mux.Handle(config.Webhook.Path, handler)
	mux.Handle(config.Webhook.Path+"/", handler)
	logger.Printf("github webhook enabled on %s", config.Webhook.Path)

	if config.Server.MetricsEnabled {
		mux.Handle(config.Server.MetricsPath, expvar.Handler())
		logger.Printf("metrics enabled on %s", config.Server.MetricsPath)
	}

	addr := ":" + strconv.Itoa(config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           internal.NewRateLimitHandler(mux, config.Server.RateLimitRPS, config.Server.RateLimitBurst),
		ReadTimeout:       time.Duration(config.Server.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(config.Server.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       time.Duration(config.Server.IdleTimeoutMS) * time.Millisecond,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderMS) * time.Millisecond,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
