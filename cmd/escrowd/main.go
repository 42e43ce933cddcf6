package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/config"
	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	inmemoryledger "github.com/escrow-network/escrowd/internal/infrastructure/ledger/inmemory"
	restledger "github.com/escrow-network/escrowd/internal/infrastructure/ledger/rest"
	webhookpubsub "github.com/escrow-network/escrowd/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/escrow-network/escrowd/internal/infrastructure/storage/db/badger"
	"github.com/escrow-network/escrowd/internal/infrastructure/storage/db/inmemory"
	"github.com/escrow-network/escrowd/internal/infrastructure/transfer"
	httpinterface "github.com/escrow-network/escrowd/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening database")
	}
	defer repoManager.Close()

	admin := config.GetString(config.AdminIdKey)
	if err := seedFeeLedger(repoManager, admin); err != nil {
		log.WithError(err).Fatal("error while initializing fee ledger")
	}

	adapters := transfer.NewAdapterRegistry(
		newAssetLedger(), config.GetString(config.CustodianIdKey),
	)
	pubsub := webhookpubsub.NewWebhookPubSubService()
	guard := application.NewCallGuard()

	tradeSvc := application.NewTradeService(
		repoManager, adapters, pubsub, guard,
		config.GetString(config.FeeAssetKey),
		config.GetBool(config.RequireConfirmationKey),
	)
	feeSvc := application.NewFeeService(
		repoManager, adapters, pubsub, guard,
		admin, config.GetString(config.FeeAssetKey),
	)

	addr := fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey))
	server := &http.Server{
		Addr: addr,
		Handler: httpinterface.NewRouter(tradeSvc, feeSvc, pubsub, httpinterface.RouterOpts{
			MutatingRatePerSecond: config.GetInt(config.MutatingRatePerSecondKey),
		}),
	}

	go func() {
		log.Info("http interface is listening on " + addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("error listening on http interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down http interface")
	}
	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewRepoManager(), nil
	}
	dbDir := config.GetDatadir()
	return dbbadger.NewRepoManager(dbDir, nil)
}

func newAssetLedger() ports.AssetLedger {
	if config.GetString(config.LedgerTypeKey) == config.LedgerRest {
		return restledger.NewClient(config.GetString(config.LedgerAddrKey))
	}
	return inmemoryledger.NewLedger()
}

// seedFeeLedger applies the configured flat fee and makes the administrator
// the fee recipient on first start. An already initialized ledger is left
// untouched.
func seedFeeLedger(repoManager ports.RepoManager, admin string) error {
	ctx := context.Background()
	return repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			if l.Recipient == "" {
				l.Recipient = admin
				l.FlatFee = config.GetUint64(config.FlatFeeKey)
			}
			return l, nil
		},
	)
}
