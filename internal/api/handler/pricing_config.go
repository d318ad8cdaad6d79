package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/pkg/apiErrors"
	"github.com/vfg2006/kenlo-pricing-api/pkg/middleware"
)

// PricingConfigResponse é o snapshot vigente com o documento completo
type PricingConfigResponse struct {
	Version  string                       `json:"version"`
	LoadedAt string                       `json:"loaded_at"`
	Config   *domain.PricingConfiguration `json:"config"`
}

func newPricingConfigResponse(snapshot *domain.PricingSnapshot) PricingConfigResponse {
	return PricingConfigResponse{
		Version:  snapshot.Version,
		LoadedAt: snapshot.LoadedAt.Format("2006-01-02T15:04:05Z07:00"),
		Config:   snapshot.Config,
	}
}

func GetCurrentPricingConfig(service configuring.ConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.Current(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrBrokenPricingConfig)
			return
		}

		writeJSON(w, http.StatusOK, newPricingConfigResponse(snapshot))
	}
}

func ListPricingConfigVersions(service configuring.ConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		versions, err := service.History(r.Context(), limit)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrBrokenPricingConfig)
			return
		}

		writeJSON(w, http.StatusOK, versions)
	}
}

func GetPricingConfigVersion(service configuring.ConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := httprouter.ParamsFromContext(r.Context()).ByName("version")
		if version == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Versão não informada", nil)
			return
		}

		snapshot, err := service.GetVersion(r.Context(), version)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrBrokenPricingConfig)
			return
		}

		writeJSON(w, http.StatusOK, newPricingConfigResponse(snapshot))
	}
}

// SavePricingConfig grava o documento enviado como nova versão vigente
func SavePricingConfig(service configuring.ConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		document, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o documento", nil)
			return
		}
		if len(document) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Documento de configuração vazio", nil)
			return
		}

		snapshot, err := service.Save(r.Context(), document, user.UserEmail)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInvalidPricingConfig)
			return
		}

		writeJSON(w, http.StatusCreated, newPricingConfigResponse(snapshot))
	}
}
