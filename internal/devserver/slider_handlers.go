package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddSliderRequest represents the slider creation body
type AddSliderRequest struct {
	MediaURL  string `json:"mediaUrl" binding:"required,url"`
	MediaType string `json:"mediaType" binding:"mediatype"`
}

func (s *Server) listSliders(c *gin.Context) {
	var sliders []Slider
	if err := s.db.Order("created_at DESC").Find(&sliders).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list sliders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Sliders fetched successfully", sliders)
}

func (s *Server) addSlider(c *gin.Context) {
	var req AddSliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	slider := &Slider{Image: req.MediaURL, MediaType: req.MediaType}
	if err := s.db.Create(slider).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create slider")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create slider"})
		return
	}

	respond(c, http.StatusCreated, "Slider added successfully", slider)
}

func (s *Server) deleteSlider(c *gin.Context) {
	var slider Slider
	if err := FindByID(s.db, c.Param("id"), &slider); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Slider not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find slider")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := s.db.Delete(&slider).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete slider")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete slider"})
		return
	}

	respond(c, http.StatusOK, "Slider deleted successfully", nil)
}
