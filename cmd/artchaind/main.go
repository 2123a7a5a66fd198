package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artchain/config"
	"artchain/core"
	"artchain/core/state"
	"artchain/native/ecosystem"
	"artchain/observability/logging"
	"artchain/observability/metrics"
	"artchain/storage"
	"artchain/storage/trie"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("ARTCHAIN_ENV"))
	logger := logging.Setup("artchaind", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	root, err := trie.LoadRoot(db)
	if err != nil {
		panic(fmt.Sprintf("Failed to load state root: %v", err))
	}
	tr, err := trie.NewTrie(db, root)
	if err != nil {
		panic(fmt.Sprintf("Failed to open state trie: %v", err))
	}

	exporter := metrics.NewEventExporter(nil)
	processor := core.NewProcessor(tr, exporter)
	orchestrator := ecosystem.NewOrchestrator(processor)
	orchestrator.SetPauses(processor.Manager().Pauses())

	deployment, found, err := orchestrator.Deployment()
	if err != nil {
		logger.Error("Failed to read deployment record", slog.Any("error", err))
		os.Exit(1)
	}
	if !found {
		deployment, err = bootstrap(orchestrator, processor, cfg)
		if err != nil {
			logger.Error("Bootstrap failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Ecosystem deployed",
			slog.String("token", common.Address(deployment.Token).Hex()),
			slog.String("reserve", common.Address(deployment.Reserve).Hex()),
			slog.String("rewards", common.Address(deployment.Rewards).Hex()),
		)
	} else {
		logger.Info("Ecosystem already deployed",
			slog.String("token", common.Address(deployment.Token).Hex()),
			slog.String("reserve", common.Address(deployment.Reserve).Hex()),
			slog.String("rewards", common.Address(deployment.Rewards).Hex()),
		)
	}

	server := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Metrics listener started", slog.String("address", cfg.MetricsAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics listener failed", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	server.Close()
}

// bootstrap deploys the ecosystem with the configured deployer, applies the
// configured distribution ratio, and commits the resulting state.
func bootstrap(orchestrator *ecosystem.Orchestrator, processor *core.Processor, cfg *config.Config) (*ecosystem.Deployment, error) {
	deployer, err := cfg.DeployerAddress()
	if err != nil {
		return nil, err
	}
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		return nil, err
	}
	if cfg.DistributionRatioBps != 0 && cfg.DistributionRatioBps != ecosystem.DefaultRatioBps {
		_, accountant, _ := orchestrator.Engines(deployment)
		err = processor.Execute(func(*state.Manager) error {
			return accountant.SetDistributionRatio(deployer, cfg.DistributionRatioBps)
		})
		if err != nil {
			return nil, err
		}
	}
	if _, err := processor.Commit(); err != nil {
		return nil, err
	}
	return deployment, nil
}
