package handlers

import (
	"net/http"
	"time"

	driverRepo "fleetdesk/database/repository/driver"
	"fleetdesk/models"
	"fleetdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const driverTokenTTL = 30 * 24 * time.Hour

// AuthHandler manages driver registration and login.
type AuthHandler struct {
	Drivers driverRepo.DriverRepository
}

func NewAuthHandler(drivers driverRepo.DriverRepository) *AuthHandler {
	return &AuthHandler{Drivers: drivers}
}

// RegisterDriver creates a driver account keyed by mobile number.
func (h *AuthHandler) RegisterDriver(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Username string `json:"username"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
		FCMToken string `json:"fcmToken,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Mobile == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile and password must not be empty"})
		return
	}

	existing, err := h.Drivers.GetByMobile(req.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "driver already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	driver := &models.Driver{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		FCMToken:     req.FCMToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Drivers.Create(driver); err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(driver.ID, driver.Mobile, driverTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("driver registered", zap.String("driverId", driver.ID))
	c.JSON(http.StatusCreated, gin.H{
		"driverId": driver.ID,
		"token":    token,
	})
}

// LoginDriver authenticates a driver and issues a token.
func (h *AuthHandler) LoginDriver(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	driver, err := h.Drivers.GetByMobile(req.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}
	if driver == nil || bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid mobile or password"})
		return
	}

	token, err := utils.GenerateToken(driver.ID, driver.Mobile, driverTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("driver logged in", zap.String("driverId", driver.ID))
	c.JSON(http.StatusOK, gin.H{
		"driverId": driver.ID,
		"token":    token,
	})
}

// UpdateFCMToken stores the driver's current push token.
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	driverID, ok := c.Get("driverID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing driver identity"})
		return
	}

	var req struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fcmToken must not be empty"})
		return
	}

	if err := h.Drivers.UpdateFCMToken(driverID.(string), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token updated"})
}

// GetDriverProfile returns the authenticated driver's account.
func (h *AuthHandler) GetDriverProfile(c *gin.Context) {
	driverID, ok := c.Get("driverID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing driver identity"})
		return
	}

	driver, err := h.Drivers.GetByID(driverID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	if driver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}
	driver.PasswordHash = ""
	c.JSON(http.StatusOK, driver)
}
