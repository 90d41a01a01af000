// Package app builds the process-wide clients once and hands them out
// explicitly. Nothing in here is a package-level singleton; cmd/api owns the
// App and closes it on shutdown.
package app

import (
	"context"
	"errors"
	"fmt"

	"finboard/internal/analyzer"
	"finboard/internal/config"
	"finboard/internal/database"
	"finboard/internal/events"
	"finboard/internal/logger"
	"finboard/internal/services"
	"finboard/internal/session"
	"finboard/internal/store"
	"finboard/internal/store/mongostore"
	"finboard/internal/store/sqlstore"
)

// App holds the constructed clients and services.
type App struct {
	Config    *config.Config
	Store     store.Store
	Tokens    *session.Tokens
	Analyzer  analyzer.Analyzer
	Publisher events.Publisher

	Accounts services.AccountServicer
	Profiles services.ProfileServicer
	Goals    services.GoalServicer
	Expenses services.ExpenseServicer
	Analysis services.AnalysisServicer
	Audit    services.AuditServicer
}

// New validates cfg and constructs every client. On error anything already
// opened is closed again.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Project.Validate(); err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	tokens := session.NewTokens(cfg.JWTSecret, cfg.Project.AuthDomain, cfg.Project.ProjectID, cfg.JWTExpirationDur)
	if !tokens.Ready() {
		logger.Get().Warn("JWT_SECRET is not set: sessions stay pending and sign-in is unavailable")
	}

	return Assemble(cfg, st, tokens, newAnalyzer(cfg), publisher), nil
}

// Assemble wires services on top of already constructed clients.
func Assemble(cfg *config.Config, st store.Store, tokens *session.Tokens, a analyzer.Analyzer, publisher events.Publisher) *App {
	if publisher == nil {
		publisher = events.Nop{}
	}
	profiles := services.NewProfileService(st)
	expenses := services.NewExpenseService(st)
	return &App{
		Config:    cfg,
		Store:     st,
		Tokens:    tokens,
		Analyzer:  a,
		Publisher: publisher,
		Accounts:  services.NewAccountService(st),
		Profiles:  profiles,
		Goals:     services.NewGoalService(st),
		Expenses:  expenses,
		Analysis:  services.NewAnalysisService(profiles, expenses, a, cfg.AnalyzerTimeout),
		Audit:     services.NewAuditService(st, publisher),
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.DriverMongo {
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}

	manager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	st := sqlstore.New(manager.DB())
	if err := manager.Migrate(); err != nil {
		_ = st.Close(ctx)
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Get().Infow("connected to database", "driver", cfg.StoreDriver)
	return st, nil
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.KafkaBootstrapServers == "" {
		logger.Get().Info("KAFKA_BOOTSTRAP_SERVERS not set, audit events are not published")
		return events.Nop{}, nil
	}
	p, err := events.NewKafkaPublisher(events.KafkaConfig{
		BootstrapServers: cfg.KafkaBootstrapServers,
		APIKey:           cfg.KafkaAPIKey,
		APISecret:        cfg.KafkaAPISecret,
		Topic:            cfg.KafkaAuditTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return p, nil
}

func newAnalyzer(cfg *config.Config) analyzer.Analyzer {
	if cfg.AnalyzerProvider == config.ProviderOpenAI {
		return analyzer.NewOpenAIClient(cfg.AnalyzerURL, cfg.AnalyzerAPIKey, cfg.AnalyzerModel, cfg.AnalyzerTimeout)
	}
	return analyzer.NewFlowClient(cfg.AnalyzerURL, cfg.AnalyzerAPIKey, cfg.AnalyzerTimeout)
}

// Close flushes pending events and closes the store.
func (a *App) Close(ctx context.Context) error {
	a.Publisher.Close()
	if err := a.Store.Close(ctx); err != nil {
		return errors.Join(errors.New("failed to close store"), err)
	}
	return nil
}
