package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest represents the admin registration request
type RegisterRequest struct {
	FullName    string `json:"fullname" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,min=10"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
}

// AuthResponse is the data of a successful registration or sign-in
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// register creates an admin account, or signs in when the email is already
// registered and the password matches
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.createAdmin(c, req)
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if user.Role != RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	token, err := s.tokens.GenerateToken(&user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Admin logged in")
	respond(c, http.StatusOK, "Login successful", AuthResponse{Token: token, User: &user})
}

func (s *Server) createAdmin(c *gin.Context, req RegisterRequest) {
	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Phone:        req.PhoneNumber,
		Role:         RoleAdmin,
	}
	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create admin user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Admin registered")
	respond(c, http.StatusCreated, "Admin registered successfully", AuthResponse{Token: token, User: user})
}

// logout revokes the token the request was made with
func (s *Server) logout(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	revoked := &RevokedToken{TokenID: sessionData.TokenID, ExpiresAt: sessionData.ExpiresAt}
	if err := s.db.Create(revoked).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to revoke token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log out"})
		return
	}

	s.logger.Info().Str("user_id", sessionData.UserID).Msg("Admin logged out")
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (s *Server) listUsers(c *gin.Context) {
	var users []User
	if err := s.db.Preload("Address").Order("created_at DESC").Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Users fetched successfully", users)
}

// addAddress sets the saved address of a user, replacing any previous one
func (s *Server) addAddress(c *gin.Context) {
	var req PostalAddress
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := c.Param("userId")
	var user User
	if err := FindByID(s.db, userID, &user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var address Address
	err := s.db.Where("user_id = ?", userID).First(&address).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to find address")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	address.UserID = userID
	address.PostalAddress = req
	if err := s.db.Save(&address).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to save address")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save address"})
		return
	}

	respond(c, http.StatusCreated, "Address saved successfully", address)
}
