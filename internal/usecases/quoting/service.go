// Package quoting calcula cotações a partir da configuração de preços vigente
package quoting

import (
	"context"

	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/pkg/log"
)

// SnapshotProvider fornece a configuração de preços vigente
type SnapshotProvider interface {
	Current(ctx context.Context) (*domain.PricingSnapshot, error)
}

type QuoteService interface {
	Compute(ctx context.Context, in domain.QuoteInput) (*domain.QuoteResult, error)
	SuggestKombo(ctx context.Context, in domain.QuoteInput) (string, error)
}

type Service struct {
	snapshots SnapshotProvider
}

func NewService(snapshots SnapshotProvider) QuoteService {
	return &Service{snapshots: snapshots}
}

// Compute calcula a cotação sobre um único snapshot, lido uma vez por requisição
func (s *Service) Compute(ctx context.Context, in domain.QuoteInput) (*domain.QuoteResult, error) {
	logger := log.ForContext(ctx)

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao obter configuração de preços vigente")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"config_version": snapshot.Version,
		"quote_product":  in.Product,
		"quote_cycle":    in.CycleID,
		"quote_kombo":    in.KomboID,
		"quote_addons":   len(in.Addons),
	}).Debug("Calculando cotação")

	result, err := ComputeQuote(snapshot.Config, in)
	if err != nil {
		if IsConfigError(err) {
			logger.WithError(err).Error("Configuração de preços inválida")
		} else {
			logger.WithError(err).Warn("Cotação rejeitada")
		}
		return nil, err
	}

	logger.WithFields(log.Fields{
		"config_version": result.ConfigVersion,
		"quote_kombo":    result.KomboID,
		"quote_monthly":  result.TotalMonthly.String(),
		"quote_postpaid": result.PostPaidTotal.String(),
	}).Info("Cotação calculada")

	return result, nil
}

// SuggestKombo retorna o kombo sugerido para a seleção, ou vazio quando nenhum se aplica
func (s *Service) SuggestKombo(ctx context.Context, in domain.QuoteInput) (string, error) {
	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return "", err
	}

	if _, err := validateInput(&in); err != nil {
		return "", err
	}

	id, _ := SuggestKombo(snapshot.Config, in)
	return id, nil
}
