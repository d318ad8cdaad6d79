package handler

import (
	"io"
	"net/http"

	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"github.com/vfg2006/kenlo-pricing-api/pkg/apiErrors"
	"github.com/vfg2006/kenlo-pricing-api/pkg/log"
)

type SuggestKomboResponse struct {
	KomboID string `json:"komboId"`
	Found   bool   `json:"found"`
}

func decodeQuoteInput(w http.ResponseWriter, r *http.Request) (domain.QuoteInput, bool) {
	var in domain.QuoteInput

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o corpo da requisição", nil)
		return in, false
	}

	if err := json.Unmarshal(body, &in); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da cotação inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição não é uma cotação válida", nil)
		return in, false
	}

	return in, true
}

// ComputeQuote calcula a cotação e devolve os valores já arredondados para exibição
func ComputeQuote(service quoting.QuoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeQuoteInput(w, r)
		if !ok {
			return
		}

		result, err := service.Compute(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrBrokenPricingConfig)
			return
		}

		writeJSON(w, http.StatusOK, result.Present())
	}
}

func SuggestKombo(service quoting.QuoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeQuoteInput(w, r)
		if !ok {
			return
		}

		id, err := service.SuggestKombo(r.Context(), in)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrBrokenPricingConfig)
			return
		}

		writeJSON(w, http.StatusOK, SuggestKomboResponse{KomboID: id, Found: id != ""})
	}
}
