package api

import (
	"errors"
	"net/http"
	"strings"

	"comanda/internal/dialogue"
	"comanda/internal/models"

	"github.com/gin-gonic/gin"
)

// Conversation handlers

func (s *Server) PostMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv := s.sessions.GetOrCreate(c.Param("id"), s.cfg.Language)
	replies, err := s.orch.HandleTurn(c.Request.Context(), conv, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"replies":     replies,
		"phase":       conv.Phase,
		"items":       conv.Items,
		"client_info": conv.Client,
		"missing":     dialogue.MissingRequired(&conv.Client),
		"has_pending": s.orch.HasPending(conv.ID),
	})
}

func (s *Server) GetConversation(c *gin.Context) {
	conv, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (s *Server) DeleteConversation(c *gin.Context) {
	s.sessions.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Conversation reset"})
}

func (s *Server) ConfirmOrder(c *gin.Context) {
	conv, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	order, err := s.orch.Confirm(conv)
	if err != nil {
		var nr *dialogue.NotReadyError
		if errors.As(err, &nr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    err.Error(),
				"missing":  nr.Missing,
				"no_items": nr.NoItems,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": conv.LastAssistant(),
	})
}

// Order queue handlers

func (s *Server) ListOrders(c *gin.Context) {
	if err := s.queue.SweepSLA(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	list, err := s.queue.ListQueue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.queue.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}

	if err := s.queue.SetStatus(c.Param("id"), req.Status); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// Pending question handlers

func (s *Server) ListPendings(c *gin.Context) {
	// Sweep first so expired questions never show up as actionable.
	if err := s.ledger.AutoApproveExpired(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	list, err := s.ledger.ListPending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pendings": list, "count": len(list)})
}

func (s *Server) ResolvePending(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Answer string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidResolution(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resolution status"})
		return
	}

	if err := s.ledger.Resolve(c.Param("id"), req.Status, req.Answer); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resolution recorded"})
}

// Menu handlers

func (s *Server) ListMenu(c *gin.Context) {
	items, err := s.catalog.ListMenu()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": items, "count": len(items)})
}

func (s *Server) AddMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.catalog.Add(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	if err := s.catalog.Delete(c.Param("name")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item removed"})
}

// GetStats returns the in-process counter snapshot.
func (s *Server) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
