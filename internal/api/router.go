package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"heavyrent-backend/internal/mw"
)

// RouterOptions tunes the shared middleware.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, tokens mw.TokenVerifier, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	limit := rate.Inf
	if opts.RateLimitPerSec > 0 {
		limit = rate.Limit(opts.RateLimitPerSec)
	}
	r.Use(mw.RateLimiter(limit, opts.RateLimitBurst))

	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	// Users never change after creation, so lookups by id are safe to cache.
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	r.GET("/auth/google", h.GoogleAuth)
	r.GET("/auth/google/redirect", h.GoogleAuthRedirect)

	r.GET("/users/:id", caching, h.GetUser)
	r.GET("/machines", h.ListMachines)
	r.GET("/vapid_public_key", h.GetVAPIDPublicKey)

	protected := r.Group("/")
	protected.Use(mw.Authenticate(tokens))
	{
		protected.GET("/users", h.ListUsers)
		protected.POST("/machines", h.CreateMachine)
		protected.POST("/rentals", h.CreateRental)
		protected.GET("/rentals/mine", h.MyRentals)
		protected.PUT("/subscriptions", h.PutSubscription)
		protected.DELETE("/subscriptions", h.DeleteSubscription)
	}

	return r
}
