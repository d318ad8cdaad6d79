// Package seed grava a configuração de preços inicial quando a origem ainda está vazia
package seed

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
)

const createdBy = "seed"

// PricingConfig grava o documento de path como primeira versão se a origem não tiver nenhuma.
// Retorna true quando a gravação aconteceu.
func PricingConfig(ctx context.Context, repo repository.PricingConfigRepository, path string) (bool, error) {
	_, err := repo.Latest(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrVersionNotFound) {
		return false, errors.Wrap(err, "erro ao verificar versões existentes")
	}

	startTime := time.Now()
	logrus.WithField("path", path).Info("Nenhuma configuração de preços encontrada, gravando versão inicial")

	document, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "erro ao ler %s", path)
	}

	cfg, err := configuring.Parse(document)
	if err != nil {
		return false, err
	}

	canonical, err := configuring.Encode(cfg)
	if err != nil {
		return false, errors.Wrap(err, "erro ao serializar a configuração inicial")
	}

	version := &domain.PricingConfigVersion{
		Version:   cfg.Version,
		Document:  canonical,
		CreatedBy: createdBy,
	}
	if err := repo.Save(ctx, version); err != nil {
		return false, errors.Wrap(err, "erro ao gravar a configuração inicial")
	}

	logrus.WithFields(logrus.Fields{
		"config_version": cfg.Version,
		"elapsed":        time.Since(startTime).String(),
	}).Info("Configuração de preços inicial gravada")

	return true, nil
}
