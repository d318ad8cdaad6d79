package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

// HealthcheckHandler responde 200 enquanto houver uma configuração de preços carregada
func HealthcheckHandler(current func(ctx context.Context) (*domain.PricingSnapshot, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := current(r.Context())
		if err != nil {
			logrus.WithError(err).Warn("healthcheck sem configuração de preços")
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"config_version": snapshot.Version,
			"time":           time.Now().Format(time.RFC3339),
		})
	})
}
