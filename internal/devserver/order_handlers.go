package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateOrderStatusRequest represents the order status change body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

func (s *Server) listOrders(c *gin.Context) {
	var orders []Order
	err := s.db.Preload("Items.Product").Preload("User").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Orders fetched successfully", orders)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var order Order
	if err := FindByID(s.db, c.Param("id"), &order); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find order")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update order status")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}
	order.Status = req.Status

	s.logger.Info().Str("order_id", order.ID).Str("status", req.Status).Msg("Order status updated")
	respond(c, http.StatusOK, "Order status updated successfully", order)
}
