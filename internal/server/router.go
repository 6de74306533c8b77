package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-seeker-api/internal/handlers"
	"github.com/justsurfingit/job-seeker-api/internal/middleware"
	"go.opentelemetry.io/otel/trace"
)

type RouterConfig struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	AllowOrigins       []string
	// Optional. A nil Metrics leaves /metrics unregistered.
	Metrics *middleware.Metrics
	Tracer  trace.Tracer
}

// NewRouter builds the gin engine with the middleware chain and every route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Tracing(cfg.Tracer))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	jobs := cfg.JobHandler
	r.GET("/jobs", jobs.ListPreview)
	r.GET("/jobs/:email", jobs.ListByOwner)
	r.PUT("/jobs/:id", jobs.UpdateJob)
	r.DELETE("/jobs/:id", jobs.DeleteJob)
	r.GET("/allJob", jobs.ListAll)
	r.GET("/jobDetails/:id", jobs.GetJob)
	r.POST("/addJob", jobs.CreateJob)
	if jobs.Extractor != nil {
		r.POST("/jobs/extract", jobs.ParseJob)
	}

	apps := cfg.ApplicationHandler
	r.POST("/job-applications", apps.Submit)
	r.GET("/applied-job/:email", apps.ListByApplicant)
	r.DELETE("/applied-job/:id", apps.Withdraw)

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.CorrelationHeader}
	config.ExposeHeaders = []string{middleware.CorrelationHeader}
	return config
}
