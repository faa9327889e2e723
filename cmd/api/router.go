package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/items/domain/item"
	"github.com/giovaniif/items/infra/metrics"
	"github.com/giovaniif/items/infra/requestid"
	"github.com/giovaniif/items/infra/tracing"
	"github.com/giovaniif/items/protocols"
	"github.com/giovaniif/items/use_cases/create"
	"github.com/giovaniif/items/use_cases/get"
	"github.com/giovaniif/items/use_cases/list"
	"github.com/giovaniif/items/use_cases/remove"
	"github.com/giovaniif/items/use_cases/update"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Dependencies are built once per process and shared by every request.
type Dependencies struct {
	Items       item.Repository
	IdGenerator protocols.IdGenerator
	Idempotency protocols.IdempotencyGateway
	Events      protocols.EventPublisher
	Logger      *slog.Logger
	// AccessLog receives gin's request log lines. Nil disables it.
	AccessLog    io.Writer
	Redis        redis.UniversalClient
	KafkaEnabled bool
	StaticDir    string
	Greeting     string
}

func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := os.MkdirAll(deps.StaticDir, 0o755); err != nil {
		return nil, fmt.Errorf("create static dir %s: %w", deps.StaticDir, err)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestid.Middleware(), tracing.Middleware(), metrics.Middleware)
	if deps.AccessLog != nil {
		r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
			Output:    deps.AccessLog,
			SkipPaths: []string{"/metrics", "/health"},
		}))
	}

	handler := &itemsHandler{
		createUseCase: create.NewCreate(deps.Items, deps.IdGenerator, deps.Idempotency, deps.Events, deps.Logger),
		listUseCase:   list.NewList(deps.Items),
		getUseCase:    get.NewGet(deps.Items),
		updateUseCase: update.NewUpdate(deps.Items, deps.Events, deps.Logger),
		removeUseCase: remove.NewRemove(deps.Items, deps.Events, deps.Logger),
		logger:        deps.Logger,
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Hello": "World", "message": deps.Greeting})
	})

	// browsers ask for it on every page load
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		redisCheck := "n/a"
		if deps.Redis != nil {
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				status = "degraded"
				redisCheck = "down"
			} else {
				redisCheck = "up"
			}
		}
		kafkaCheck := "n/a"
		if deps.KafkaEnabled {
			kafkaCheck = "configured"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "checks": gin.H{"redis": redisCheck, "kafka": kafkaCheck}})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static", deps.StaticDir)

	items := r.Group("/items")
	items.POST("", handler.create)
	items.GET("", handler.list)
	items.GET("/:id", handler.get)
	items.PUT("/:id", handler.update)
	items.DELETE("/:id", handler.remove)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})

	return r, nil
}
