package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/configs"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/security"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	customers usecase.CustomerRepo
	cfg       configs.Config
}

func NewAuthHandler(customers usecase.CustomerRepo, cfg configs.Config) *AuthHandler {
	return &AuthHandler{customers: customers, cfg: cfg}
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Phone     string `json:"telefono"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.customers.CreateAccount(c.Request.Context(), &usecase.NewAccount{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user registered",
		"usuario": user,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login. Wrong email and wrong password get
// the same answer.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	user, err := h.customers.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !security.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"usuario":      user,
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.cfg.Security.TTL.Seconds()),
	})
}

func (h *AuthHandler) issueToken(user *usecase.UserRecord) (string, error) {
	perms := []string{"orders.read"}
	if user.UserType == "admin" {
		perms = append(perms, "orders.manage")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":        h.cfg.Security.Issuer,
		"aud":        h.cfg.Security.Audience,
		"sub":        strconv.FormatInt(user.UserID, 10),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"exp":        now.Add(h.cfg.Security.TTL).Unix(),
		"cliente_id": user.CustomerID,
		"perms":      perms,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.Security.JWTSecret))
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword handles PUT /users/:id/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	current, err := h.customers.PasswordHashByUserID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !security.CheckPassword(current, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.customers.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}

type updateProfileReq struct {
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Phone     string `json:"telefono"`
}

// UpdateProfile handles PUT /customers/:id.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first and last name are required"})
		return
	}

	user, err := h.customers.UpdateCustomer(c.Request.Context(), customerID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated",
		"usuario": user,
	})
}
