package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fadedpez/gamesvc/internal/logging"
	"github.com/fadedpez/gamesvc/pkg/services/blackjack"
	"github.com/fadedpez/gamesvc/pkg/services/rps"
)

// Server wires the game services to their HTTP routes
type Server struct {
	blackjack *blackjack.Service
	rps       *rps.Service
	logger    *logging.Logger
	router    *gin.Engine
}

// New creates a server with all routes registered
func New(bj *blackjack.Service, rpsSvc *rps.Service, logger *logging.Logger) *Server {
	s := &Server{
		blackjack: bj,
		rps:       rpsSvc,
		logger:    logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	bjRoutes := router.Group("/blackjack")
	{
		bjRoutes.GET("", s.handleActiveSessions)
		bjRoutes.GET("/:player", s.handleInfo)
		bjRoutes.POST("/:player/create/:bet", s.handleCreate)
		bjRoutes.POST("/:player/hit", s.handleHit)
		bjRoutes.POST("/:player/stay", s.handleStay)
		bjRoutes.POST("/:player/claim", s.handleClaim)
	}

	router.POST("/rps/:move", s.handleRPS)

	s.router = router
	return s
}

// Handler returns the router for mounting on an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
