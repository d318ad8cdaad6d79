package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"github.com/vfg2006/kenlo-pricing-api/pkg/apiErrors"
	"github.com/vfg2006/kenlo-pricing-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes limita o corpo das requisições (o maior é o documento de configuração)
const maxBodyBytes = 2 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("Erro ao escrever resposta")
	}
}

// writeServiceError traduz os erros dos serviços para a resposta padronizada.
// configCode diferencia documento rejeitado (PUT) de configuração vigente quebrada (cotação).
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, configCode string) {
	var inputErr *quoting.InputError
	if errors.As(err, &inputErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidQuoteInput, inputErr.Error(), map[string]string{
			"field": inputErr.Field,
		})
		return
	}

	var configErr *quoting.ConfigError
	if errors.As(err, &configErr) {
		apiErrors.WriteError(w, configCode, configErr.Error(), map[string]string{
			"path": configErr.Path,
		})
		return
	}

	if errors.Is(err, configuring.ErrVersionNotFound) {
		apiErrors.WriteError(w, apiErrors.ErrPricingConfigNotFound, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado")

	var serviceErr *configuring.ConfigServiceError
	if errors.As(err, &serviceErr) {
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, serviceErr.Err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}
