package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/database/postgres"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/migration/seed"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/pricingsource"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository"
	"github.com/vfg2006/kenlo-pricing-api/internal/api"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/scheduler"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/authenticating"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"github.com/vfg2006/kenlo-pricing-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo := pricingRepository(ctx, cfg)
	defer closeRepo()

	configService := configuring.NewService(repo)

	// Sem configuração válida não há como cotar: falha na subida, nunca na primeira requisição
	snapshot, err := configService.Reload(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a configuração de preços")
	}
	logrus.WithField("config_version", snapshot.Version).Info("Configuração de preços pronta")

	quoteService := quoting.NewService(configService)

	authenticator, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar autenticação")
	}

	refreshService := scheduler.NewPricingConfigRefreshService(configService, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga da configuração de preços")
	} else {
		logrus.Info("Agendador de recarga da configuração de preços iniciado com sucesso")
	}

	server, err := api.New(cfg, quoteService, configService, authenticator, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pricingRepository escolhe a origem da configuração conforme PRICING_SOURCE
func pricingRepository(ctx context.Context, cfg *config.Config) (repository.PricingConfigRepository, func()) {
	if cfg.Pricing.Source == config.PricingSourceFile {
		logrus.WithField("path", cfg.Pricing.FilePath).Info("Configuração de preços lida de arquivo")
		return pricingsource.NewFileStore(cfg.Pricing.FilePath), func() {}
	}

	pgConn := pgconn(ctx, cfg.Database)

	if err := pgConn.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar tabelas da configuração de preços")
	}

	repo := repository.NewPricingConfigRepository(pgConn)
	if _, err := seed.PricingConfig(ctx, repo, cfg.Pricing.SeedPath); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar a configuração de preços inicial")
	}

	return repo, func() { pgConn.Close() }
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
