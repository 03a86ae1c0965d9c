// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sitegen-workers/internal/common/aws"
	"sitegen-workers/internal/common/camunda"
	"sitegen-workers/internal/common/config"
	"sitegen-workers/internal/common/database"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/observability"
	"sitegen-workers/pkg/catalog"

	fusebusinessdata "sitegen-workers/internal/workers/generation/fuse-business-data"
	generatequestions "sitegen-workers/internal/workers/generation/generate-questions"
	populatecontent "sitegen-workers/internal/workers/generation/populate-content"
	selecttemplate "sitegen-workers/internal/workers/generation/select-template"
	fetchcompetitordata "sitegen-workers/internal/workers/ingestion/fetch-competitor-data"
	normalizesourcedata "sitegen-workers/internal/workers/ingestion/normalize-source-data"
	sendgenerationnotice "sitegen-workers/internal/workers/notification/send-generation-notice"
	recorduseranswers "sitegen-workers/internal/workers/persistence/record-user-answers"
	savegeneratedsite "sitegen-workers/internal/workers/persistence/save-generated-site"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		log.Warn("operation failed, retrying",
			zap.String("operation", operationName),
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func workerOptions(wcfg config.WorkerConfig) camunda.WorkerOptions {
	return camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       config.GetDuration(wcfg.Timeout),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()
	structured := logger.NewZapAdapter(log)

	log.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	// Industry catalogue: built-in profiles unless an override file is set.
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Fatal("failed to load industry catalogue",
				zap.String("path", cfg.Catalog.Path),
				zap.Error(err),
			)
		}
	}
	cat.Strict = cfg.Catalog.Strict
	if err := cat.Validate(); err != nil {
		log.Fatal("industry catalogue is invalid", zap.Error(err))
	}

	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "camunda connection")
	if err != nil {
		log.Fatal("failed to connect to camunda", zap.Error(err))
	}
	defer camundaClient.Close()
	zeebeClient := camundaClient.GetClient()

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, log, "postgres connection")
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pg.Close()

	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		return err
	}, 15, 2*time.Second, log, "elasticsearch connection")
	if err != nil {
		log.Fatal("failed to connect to elasticsearch", zap.Error(err))
	}

	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		return err
	}, 10, 2*time.Second, log, "redis connection")
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	var workers []*camunda.CamundaWorker

	if config.IsWorkerEnabled(cfg, normalizesourcedata.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, normalizesourcedata.TaskType)
		handler := normalizesourcedata.NewHandler(normalizesourcedata.LoadConfig(), structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, normalizesourcedata.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, fetchcompetitordata.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, fetchcompetitordata.TaskType)
		handler := fetchcompetitordata.NewHandler(fetchcompetitordata.FromElasticsearch(cfg.Database.Elasticsearch), es.Client, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, fetchcompetitordata.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, fusebusinessdata.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, fusebusinessdata.TaskType)
		handler := fusebusinessdata.NewHandler(fusebusinessdata.FromPolicy(cfg.Policy), cat, redisClient.Client, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, fusebusinessdata.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, generatequestions.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, generatequestions.TaskType)
		handler := generatequestions.NewHandler(generatequestions.FromPolicy(cfg.Policy), cat, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, generatequestions.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, selecttemplate.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, selecttemplate.TaskType)
		handler := selecttemplate.NewHandler(selecttemplate.FromPolicy(cfg.Policy), structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, selecttemplate.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, populatecontent.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, populatecontent.TaskType)
		handler := populatecontent.NewHandler(populatecontent.FromPolicy(cfg.Policy), cat, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, populatecontent.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, savegeneratedsite.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, savegeneratedsite.TaskType)
		handler := savegeneratedsite.NewHandler(savegeneratedsite.LoadConfig(), pg.DB, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, savegeneratedsite.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, recorduseranswers.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, recorduseranswers.TaskType)
		handler := recorduseranswers.NewHandler(recorduseranswers.LoadConfig(), pg.DB, redisClient.Client, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, recorduseranswers.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	if config.IsWorkerEnabled(cfg, sendgenerationnotice.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, sendgenerationnotice.TaskType)

		var emailSender sendgenerationnotice.EmailSender
		var topicPublisher sendgenerationnotice.TopicPublisher
		if cfg.Notifications.Enabled {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			sesClient, sesErr := aws.NewSESClient(ctx, cfg.Notifications.AWSRegion)
			if sesErr != nil {
				cancel()
				log.Fatal("failed to create SES client", zap.Error(sesErr))
			}
			snsClient, snsErr := aws.NewSNSClient(ctx, cfg.Notifications.AWSRegion)
			cancel()
			if snsErr != nil {
				log.Fatal("failed to create SNS client", zap.Error(snsErr))
			}
			emailSender = sesClient
			topicPublisher = snsClient
		}

		handler := sendgenerationnotice.NewHandler(sendgenerationnotice.FromNotifications(cfg.Notifications), emailSender, topicPublisher, structured)
		workers = append(workers, camunda.NewWorker(zeebeClient, sendgenerationnotice.TaskType, workerOptions(wcfg), handler.Handle, log))
	}

	for _, w := range workers {
		w.Start()
	}
	log.Info("all workers registered", zap.Int("count", len(workers)))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pg.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "postgres unavailable")
			return
		}
		if err := redisClient.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "redis unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ready")
	})

	// pprof registers itself on the default mux.
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	httpServer := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		log.Info("metrics server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown failed", zap.Error(err))
	}

	log.Info("worker manager stopped")
}
