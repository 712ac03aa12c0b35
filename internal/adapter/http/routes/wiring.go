package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"webcharge_api/internal/adapter/cache"
	"webcharge_api/internal/adapter/http/handlers"
	"webcharge_api/internal/adapter/persistence/repository"
	"webcharge_api/internal/adapter/persistence/sqlstore"
	"webcharge_api/internal/infrastructure/auth"
	"webcharge_api/internal/infrastructure/catalog"
	"webcharge_api/internal/infrastructure/config"
	"webcharge_api/internal/infrastructure/database"
	"webcharge_api/internal/infrastructure/mailbox"
	"webcharge_api/internal/infrastructure/payments"
	"webcharge_api/internal/usecase"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// App is the wired service: the router plus what must be closed on shutdown.
type App struct {
	Router  *gin.Engine
	closers []func(context.Context) error
}

func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Printf("[app] shutdown step failed err=%v", err)
		}
	}
}

type stores struct {
	players    interfaces.IPlayerRepository
	identity   interfaces.IIdentityResolver
	paymentLog interfaces.IPaymentLogRepository
	ledger     interfaces.ILedgerStore
	delivery   interfaces.IMailboxDelivery
}

// Build connects the configured backends and wires the handlers.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}
	fail := func(err error) (*App, error) {
		app.Close(ctx)
		return nil, err
	}

	items := usecase.DefaultCatalog()
	if cfg.Catalog.File != "" {
		loaded, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return fail(fmt.Errorf("load catalog: %w", err))
		}
		items = loaded
	}
	resolver := usecase.NewCatalogResolver(items, cfg.Catalog.HighTierEnabled)
	log.Printf("[app] catalog loaded items=%d high_tier_enabled=%t", len(items), cfg.Catalog.HighTierEnabled)

	st, err := buildStores(ctx, cfg, app)
	if err != nil {
		return fail(err)
	}

	queue := mailbox.NewQueue(st.delivery, mailbox.QueueConfig{
		Workers:    cfg.Mailbox.Workers,
		QueueSize:  cfg.Mailbox.QueueSize,
		MaxElapsed: cfg.Mailbox.MaxElapsed,
	})
	app.closers = append(app.closers, queue.Close)

	orchestrator := usecase.NewPaymentOrchestrator(usecase.OrchestratorDeps{
		Players:    st.players,
		PaymentLog: st.paymentLog,
		Ledger:     st.ledger,
		Notifier:   queue,
		Catalog:    resolver,
	})
	store := usecase.NewStoreUseCase(usecase.StoreDeps{
		Players:    st.players,
		Identity:   st.identity,
		PaymentLog: st.paymentLog,
		Ledger:     st.ledger,
		Catalog:    resolver,
	})

	tokens, err := auth.NewTokenManager(cfg.Auth.AppID, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return fail(fmt.Errorf("auth: %w", err))
	}

	var verifier interfaces.IPaymentVerifier
	if cfg.Payments.VerifyProvider {
		mp, err := payments.NewMercadoPagoVerifier(cfg.Payments.MercadoPagoAccessToken)
		if err != nil {
			log.Printf("Mercado Pago verifier not configured: %v", err)
		} else {
			verifier = mp
		}
	}

	gin.SetMode(cfg.Server.GinMode)
	app.Router = NewRouter(Handlers{
		Payment: handlers.NewPaymentHandler(orchestrator, verifier),
		Store:   handlers.NewStoreHandler(store),
		Auth:    handlers.NewAuthHandler(tokens),
		Tokens:  tokens,
	})
	return app, nil
}

func buildStores(ctx context.Context, cfg config.Config, app *App) (stores, error) {
	var (
		st      stores
		sqlDB   database.Handles
		ddb     *dynamodb.Client
		ddbErr  error
		ddbOnce bool
	)
	dynamo := func() (*dynamodb.Client, error) {
		if !ddbOnce {
			ddbOnce = true
			ddb, ddbErr = database.ConnectDynamoDB(ctx, cfg.Dynamo)
		}
		return ddb, ddbErr
	}

	switch cfg.Storage.Backend {
	case config.BackendSQL:
		h, err := database.OpenSQL(cfg.Storage)
		if err != nil {
			return st, err
		}
		sqlDB = h
		app.closers = append(app.closers, func(context.Context) error { h.Close(); return nil })
		players := sqlstore.NewPlayerRepository(h.ReadWrite, h.ReadOnly)
		st.players = players
		st.identity = sqlstore.NewIdentityResolver(h.ReadOnly, players)
		st.paymentLog = sqlstore.NewPaymentLogRepository(h.ReadWrite, h.ReadOnly)
	case config.BackendDynamoDB:
		client, err := dynamo()
		if err != nil {
			return st, err
		}
		players := repository.NewPlayerDynamoRepository(client, cfg.Dynamo.PlayersTable)
		st.players = players
		st.identity = repository.NewAccountDynamoResolver(client, players, cfg.Dynamo.AccountsTable)
		st.paymentLog = repository.NewPaymentLogDynamoRepository(client, cfg.Dynamo.PaymentLogTable)
	}

	switch cfg.Ledger.Backend {
	case config.BackendRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return st, err
		}
		app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
		st.ledger = cache.NewLedgerRedisStore(rdb, cfg.Redis.KeyPrefix)
	case config.BackendDynamoDB:
		client, err := dynamo()
		if err != nil {
			return st, err
		}
		st.ledger = repository.NewLedgerDynamoStore(client, cfg.Dynamo.LedgerTable)
	}

	switch cfg.Mailbox.Backend {
	case config.BackendSQL:
		st.delivery = sqlstore.NewInboxDelivery(sqlDB.ReadWrite)
	case config.BackendDynamoDB:
		client, err := dynamo()
		if err != nil {
			return st, err
		}
		st.delivery = repository.NewInboxDynamoDelivery(client, cfg.Dynamo.InboxTable)
	default:
		st.delivery = mailbox.LogDelivery{}
	}

	log.Printf("[app] backends storage=%s ledger=%s mailbox=%s", cfg.Storage.Backend, cfg.Ledger.Backend, cfg.Mailbox.Backend)
	return st, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests and the
// mailbox queue.
func Run(ctx context.Context, cfg config.Config) error {
	app, err := Build(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		app.Close(context.Background())
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[app] http shutdown err=%v", err)
	}
	app.Close(shutdownCtx)
	log.Printf("[app] stopped")
	return nil
}

