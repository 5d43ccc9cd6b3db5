package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ticklane/matchcore-engine/params"
	"github.com/ticklane/matchcore-engine/pkg/journal"
	"github.com/ticklane/matchcore-engine/pkg/marketdata"
	"github.com/ticklane/matchcore-engine/pkg/matchcore"
	"github.com/ticklane/matchcore-engine/pkg/metrics"
	"github.com/ticklane/matchcore-engine/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLoggerWithFile(cfg.Logging.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	sugar.Infow("logger_initialized", "log_file", cfg.Logging.LogFile)

	j, err := journal.Open(cfg.Storage.JournalPath)
	if err != nil {
		sugar.Fatalw("journal_open_failed", "err", err, "path", cfg.Storage.JournalPath)
	}
	defer j.Close()
	sugar.Infow("journal_opened", "path", cfg.Storage.JournalPath)

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)
	book := matchcore.NewBook()
	defer book.Close()

	sink := &journalMetricsSink{journal: j, metrics: reg}

	mdServer := marketdata.NewServer(book, sugar, sink)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: mdServer.Handler(),
	}
	go mdServer.RunHub()

	go func() {
		sugar.Infow("marketdata_server_starting", "addr", cfg.Server.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("marketdata_server_failed", "err", err)
		}
	}()

	metricsServer := &http.Server{
		Addr:    cfg.Server.MetricsAddr,
		Handler: promhttp.Handler(),
	}
	go func() {
		sugar.Infow("metrics_server_starting", "addr", cfg.Server.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("metrics_server_failed", "err", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("marketdata_server_shutdown_error", "err", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("metrics_server_shutdown_error", "err", err)
	}
	sugar.Info("shutdown_complete")
}

// journalMetricsSink fans the outcome of every accepted request out to both
// the durable journal and the in-process counters, so marketdata.Server
// itself stays ignorant of persistence and observability.
type journalMetricsSink struct {
	journal *journal.Journal
	metrics *metrics.Registry
}

func (s *journalMetricsSink) RecordTrades(trades matchcore.Trades) error {
	s.metrics.TradesMatched.Add(float64(len(trades)))
	return s.journal.RecordTrades(trades)
}

func (s *journalMetricsSink) RecordAdmitted() {
	s.metrics.OrdersAdmitted.Inc()
}

func (s *journalMetricsSink) RecordRejected() {
	s.metrics.OrdersRejected.Inc()
}

func (s *journalMetricsSink) RecordCancelled() {
	s.metrics.OrdersCancelled.Inc()
}
