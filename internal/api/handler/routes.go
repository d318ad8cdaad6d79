package handler

import (
	"net/http"

	"github.com/vfg2006/kenlo-pricing-api/internal/api/handler/router"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"github.com/vfg2006/kenlo-pricing-api/pkg/middleware"
)

func Healthcheck(service configuring.ConfigService) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(service.Current),
		},
	}
}

func Quotes(service quoting.QuoteService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/quotes/compute",
			Method:      http.MethodPost,
			Handler:     ComputeQuote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes/suggest-kombo",
			Method:      http.MethodPost,
			Handler:     SuggestKombo(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func PricingConfig(service configuring.ConfigService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pricing-config",
			Method:      http.MethodGet,
			Handler:     GetCurrentPricingConfig(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pricing-config",
			Method:      http.MethodPut,
			Handler:     SavePricingConfig(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/pricing-config/versions",
			Method:      http.MethodGet,
			Handler:     ListPricingConfigVersions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/pricing-config/versions/:version",
			Method:      http.MethodGet,
			Handler:     GetPricingConfigVersion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
