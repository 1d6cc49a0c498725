// Package server exposes the graph pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/config"
	"github.com/adrianreza/wayangkg/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	kg     wayangkg.WayangKG
	server *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, kg wayangkg.WayangKG) *Server {
	return &Server{
		config: cfg,
		kg:     kg,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// Router returns the underlying router, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler()
	ingestHandler := handlers.NewIngestHandler(s.kg)
	graphHandler := handlers.NewGraphHandler(s.kg)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/live", healthHandler.HealthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/documents", ingestHandler.AddDocument)
		v1.POST("/corpus", ingestHandler.AddCorpus)

		v1.GET("/graph", graphHandler.GetGraph)
		v1.GET("/graph/statistics", graphHandler.GetStatistics)
		v1.GET("/graph/communities", graphHandler.GetCommunities)
		v1.GET("/graph/metrics", graphHandler.GetMetrics)

		v1.GET("/entities/:id", graphHandler.GetEntity)
		v1.GET("/entities/:id/subgraph", graphHandler.GetSubgraph)
		v1.GET("/entities/:id/paths", graphHandler.GetPaths)
	}
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
