package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/config"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/middleware"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/session"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/validators"
)

const tokenLifetime = 24 * time.Hour

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Store
	audit    *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	sessions *session.Store,
	auditDispatcher *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		config:   cfg,
		sessions: sessions,
		audit:    auditDispatcher,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`

	Specialty    string `json:"specialty"`
	Availability string `json:"availability"`
	Description  string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	if role == models.RoleDoctor && strings.TrimSpace(req.Specialty) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_specialty"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not appear to be valid.",
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if role == models.RoleDoctor {
		user.DoctorProfile = &models.DoctorProfile{
			Specialty:    req.Specialty,
			Availability: req.Availability,
			Description:  req.Description,
		}
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.openSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_session"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.openSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_session"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

// Logout purges the session unconditionally. Calling it twice is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess != nil {
		if err := h.sessions.Delete(c.Request.Context(), sess.Token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_session"})
			return
		}
	}

	c.Status(http.StatusNoContent)
}

// --------- JWT + session ---------

// openSession mints the token and persists the session behind it. A fresh
// login replaces any previous session for the same user.
func (h *AuthHandler) openSession(c *gin.Context, user *models.User) (string, error) {
	token, err := h.generateToken(user)
	if err != nil {
		return "", err
	}

	err = h.sessions.Save(c.Request.Context(), &session.Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"role": string(user.Role),
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(tokenLifetime).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}
