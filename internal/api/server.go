// Package api exposes the conversational assistant, the kitchen pending
// queue and the order queue over HTTP.
package api

import (
	"net/http"

	"comanda/internal/config"
	"comanda/internal/dialogue"
	"comanda/internal/menu"
	"comanda/internal/monitoring"
	"comanda/internal/orders"
	"comanda/internal/pending"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP front of the assistant.
type Server struct {
	Router   *gin.Engine
	cfg      config.Config
	catalog  *menu.Catalog
	sessions *dialogue.SessionStore
	orch     *dialogue.Orchestrator
	ledger   *pending.Ledger
	queue    *orders.Queue
	monitor  *monitoring.Monitor
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg config.Config, catalog *menu.Catalog, orch *dialogue.Orchestrator,
	ledger *pending.Ledger, queue *orders.Queue, monitor *monitoring.Monitor) *Server {
	s := &Server{
		Router:   gin.Default(),
		cfg:      cfg,
		catalog:  catalog,
		sessions: dialogue.NewSessionStore(),
		orch:     orch,
		ledger:   ledger,
		queue:    queue,
		monitor:  monitor,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "comanda API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	{
		// Conversations
		v1.POST("/conversations/:id/messages", s.PostMessage)
		v1.GET("/conversations/:id", s.GetConversation)
		v1.DELETE("/conversations/:id", s.DeleteConversation)
		v1.POST("/conversations/:id/confirm", s.ConfirmOrder)

		// Order queue
		v1.GET("/orders", s.ListOrders)
		v1.GET("/orders/:id", s.GetOrder)
		v1.PUT("/orders/:id/status", s.UpdateOrderStatus)

		// Kitchen pending questions
		v1.GET("/pendings", s.ListPendings)
		v1.POST("/pendings/:id/resolve", s.ResolvePending)

		// Menu management
		v1.GET("/menu", s.ListMenu)
		v1.POST("/menu", s.AddMenuItem)
		v1.DELETE("/menu/:name", s.DeleteMenuItem)

		// Counters snapshot
		v1.GET("/stats", s.GetStats)
	}

	s.Router.GET("/ws/kitchen", s.handleKitchenSocket)
}
