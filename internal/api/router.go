package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"smart-dashboard-backend/config"
	"smart-dashboard-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(mw.Recovery(h.log), mw.AccessLog(h.log), cors.New(corsConfig(cfg.AllowOrigins)))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	caching := mw.Cache(cache.New(cfg.CacheTTL, 2*cfg.CacheTTL), cfg.CacheTTL)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/city/summary", caching, h.GetCitySummary)

		cityViews := api.Group("/views/city")
		cityViews.POST("", h.CreateCityView)
		cityViews.GET("/:id", h.GetCityView)
		cityViews.PUT("/:id/tab", h.SelectCityTab)
		cityViews.DELETE("/:id", h.DeleteCityView)

		homeViews := api.Group("/views/home")
		homeViews.POST("", h.CreateHomeView)
		homeViews.GET("/:id", h.GetHomeView)
		homeViews.PUT("/:id/room", h.SelectRoom)
		homeViews.POST("/:id/devices/:device_id/toggle", h.ToggleDevice)
		homeViews.PUT("/:id/devices/:device_id/value", h.SetDeviceValue)
		homeViews.GET("/:id/activity", h.GetActivity)
		homeViews.DELETE("/:id", h.DeleteHomeView)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
