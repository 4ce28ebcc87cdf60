package http

import (
	"context"
	"time"

	"github.com/dkeye/djrelay/internal/adapters/signal"
	"github.com/dkeye/djrelay/internal/config"
	"github.com/dkeye/djrelay/internal/core"
	transport "github.com/dkeye/djrelay/internal/transport/http"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	clientTokenKey   = "ct"
	headerRequestID  = "X-Request-ID"
	clientTokenField = "client_token"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

// ClientTokenMiddleware keeps a stable per-browser token in the cookie
// session so connections from one client can be correlated in logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenField, token)
		c.Next()
	}
}

// RequestLogger logs every request with a request id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)

		c.Next()

		log.Debug().
			Str("module", "adapters.http").
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str(clientTokenField, c.GetString(clientTokenField)).
			Msg("request completed")
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, presence core.Presence, stats core.StatsReader, rooms core.RoomLister) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())

	secret := cfg.Secret
	if secret == "" {
		log.Warn().Str("module", "adapters.http").Msg("no session secret configured, using an ephemeral one")
		secret = uuid.NewString()
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("RelaySessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	transport.NewStatsHandler(stats, rooms).Mount(r)

	limiter := signal.NewChatRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateInterval)
	ctrl := signal.NewSignalWSController(presence, limiter, signal.Options{
		ReadLimit:     cfg.ReadLimit,
		PingPeriod:    cfg.PingPeriod,
		PongWait:      cfg.PongWait,
		WriteWait:     cfg.WriteWait,
		SendBuffer:    cfg.SendBuffer,
		MaxNameLength: cfg.MaxNameLength,
	})

	r.GET("/api/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
