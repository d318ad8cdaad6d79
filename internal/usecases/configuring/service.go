// Package configuring mantém a configuração de preços vigente e o histórico de versões
package configuring

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/pkg/log"
	"github.com/vfg2006/kenlo-pricing-api/pkg/utils"
)

type ConfigService interface {
	Current(ctx context.Context) (*domain.PricingSnapshot, error)
	Reload(ctx context.Context) (*domain.PricingSnapshot, error)
	Save(ctx context.Context, document []byte, createdBy string) (*domain.PricingSnapshot, error)
	GetVersion(ctx context.Context, version string) (*domain.PricingSnapshot, error)
	History(ctx context.Context, limit int) ([]*domain.PricingConfigVersion, error)
}

// Service guarda o snapshot vigente em um ponteiro atômico: leitores pegam o ponteiro
// uma vez por requisição e nunca veem uma configuração pela metade.
type Service struct {
	repo    repository.PricingConfigRepository
	current atomic.Pointer[domain.PricingSnapshot]
	now     func() time.Time
}

func NewService(repo repository.PricingConfigRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Current(ctx context.Context) (*domain.PricingSnapshot, error) {
	if snapshot := s.current.Load(); snapshot != nil {
		return snapshot, nil
	}
	return s.Reload(ctx)
}

// Reload lê a versão mais recente da origem e troca o snapshot vigente.
// Se outro Save ou Reload trocou o snapshot durante a leitura, o dele prevalece.
func (s *Service) Reload(ctx context.Context) (*domain.PricingSnapshot, error) {
	logger := log.ForContext(ctx)

	previous := s.current.Load()

	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, NewConfigServiceError(ErrLoadConfig, err, "Falha ao buscar a versão mais recente")
	}

	snapshot, err := s.snapshotFrom(latest)
	if err != nil {
		logger.WithError(err).Errorf("Versão %s da configuração de preços é inválida", latest.Version)
		return nil, err
	}

	if !s.current.CompareAndSwap(previous, snapshot) {
		current := s.current.Load()
		logger.WithFields(log.Fields{
			"config_version":  current.Version,
			"fetched_version": snapshot.Version,
		}).Debug("Snapshot trocado durante a recarga, versão lida descartada")
		return current, nil
	}

	if previous == nil || previous.Version != snapshot.Version {
		logger.WithField("config_version", snapshot.Version).Info("Configuração de preços carregada")
	}

	return snapshot, nil
}

// Save valida o documento, grava uma nova versão e a torna vigente.
// O rótulo da versão é sempre gerado aqui, o campo version do documento é sobrescrito.
func (s *Service) Save(ctx context.Context, document []byte, createdBy string) (*domain.PricingSnapshot, error) {
	cfg, err := Parse(document)
	if err != nil {
		return nil, err
	}

	label, err := utils.GenerateVersionLabel(s.now())
	if err != nil {
		return nil, NewConfigServiceError(ErrGenerateVersion, err, "Falha ao gerar rótulo da versão")
	}
	cfg.Version = label

	canonical, err := Encode(cfg)
	if err != nil {
		return nil, NewConfigServiceError(ErrSaveConfig, err, "Falha ao serializar a configuração")
	}

	version := &domain.PricingConfigVersion{
		Version:   label,
		Document:  canonical,
		CreatedBy: createdBy,
	}
	if err := s.repo.Save(ctx, version); err != nil {
		return nil, NewConfigServiceError(ErrSaveConfig, err, "Falha ao gravar a nova versão")
	}

	snapshot := &domain.PricingSnapshot{
		Version:  label,
		Config:   cfg,
		Raw:      canonical,
		LoadedAt: s.now(),
	}
	s.current.Store(snapshot)

	log.ForContext(ctx).WithFields(log.Fields{
		"config_version": label,
		"user_email":     createdBy,
	}).Info("Nova versão da configuração de preços gravada")

	return snapshot, nil
}

func (s *Service) GetVersion(ctx context.Context, version string) (*domain.PricingSnapshot, error) {
	if current := s.current.Load(); current != nil && current.Version == version {
		return current, nil
	}

	stored, err := s.repo.GetByVersion(ctx, version)
	if err != nil {
		if errors.Is(err, repository.ErrVersionNotFound) {
			return nil, NewConfigServiceError(ErrVersionNotFound, err, version)
		}
		return nil, NewConfigServiceError(ErrLoadConfig, err, "Falha ao buscar versão "+version)
	}

	return s.snapshotFrom(stored)
}

func (s *Service) History(ctx context.Context, limit int) ([]*domain.PricingConfigVersion, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}

	versions, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, NewConfigServiceError(ErrLoadConfig, err, "Falha ao listar versões")
	}

	return versions, nil
}

const maxHistory = 100

func (s *Service) snapshotFrom(stored *domain.PricingConfigVersion) (*domain.PricingSnapshot, error) {
	cfg, err := Parse(stored.Document)
	if err != nil {
		return nil, err
	}

	// a coluna version é a referência, mesmo que o documento traga outro valor
	if stored.Version != "" {
		cfg.Version = stored.Version
	}

	return &domain.PricingSnapshot{
		Version:  cfg.Version,
		Config:   cfg,
		Raw:      stored.Document,
		LoadedAt: s.now(),
	}, nil
}
