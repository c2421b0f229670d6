package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/niltaduartte/humano-saude-sub001/internal/middleware"
	"github.com/niltaduartte/humano-saude-sub001/internal/quote"
)

type Options struct {
	CORSOrigins []string
}

func NewRouter(quoteHandler *quote.Handler, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
	)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	quotes := r.Group("/quote")
	{
		quotes.POST("/simulate", quoteHandler.Simulate)
		quotes.POST("/plans", quoteHandler.Plans)
		quotes.GET("/brackets", quoteHandler.Brackets)
		quotes.GET("/carriers", quoteHandler.Carriers)
	}

	return r
}
