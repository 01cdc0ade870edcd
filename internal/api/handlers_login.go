package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"license-gateway/internal/auth"
	"license-gateway/internal/database"
)

// handleLogin authenticates a client device and binds its address to the
// account. The flow is fixed: key, credential lookup, expiration, device
// limit. A repeat login from a registered address succeeds without writing
// anything.
func (s *Server) handleLogin(c *gin.Context) {
	username := c.Query("Username")
	password := c.Query("Password")
	clientKey := c.Query("Key")
	ip := c.ClientIP()

	if !auth.ValidateKey(clientKey, s.keys.Client) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "failure", "reason": "invalid client key"})
		return
	}

	ctx := c.Request.Context()

	account, err := s.store.GetAccountByCredentials(ctx, username, password)
	if err != nil {
		s.logger.Error().Err(err).Msg("account lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failure", "reason": "internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "failure", "reason": "account not found"})
		return
	}

	now := time.Now().UTC()
	if account.IsExpired(now) {
		c.JSON(http.StatusForbidden, gin.H{"status": "failure", "reason": "account expired"})
		return
	}

	if err := s.store.AttachDevice(ctx, account.ID, ip, now); err != nil {
		if errors.Is(err, database.ErrDeviceLimitReached) {
			c.JSON(http.StatusForbidden, gin.H{"status": "failure", "reason": "device limit reached"})
			return
		}
		s.logger.Error().Err(err).Int("account_id", account.ID).Msg("device attach failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failure", "reason": "internal error"})
		return
	}

	s.invalidateAccountList(ctx)

	devices, err := s.store.ListDevices(ctx, account.ID)
	if err != nil {
		s.logger.Error().Err(err).Int("account_id", account.ID).Msg("device listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failure", "reason": "internal error"})
		return
	}

	addresses := make([]string, 0, len(devices))
	for _, d := range devices {
		addresses = append(addresses, d.IPAddress)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"username":        account.Username,
		"created_date":    account.CreatedDate,
		"expiration_date": account.ExpirationDate,
		"devices":         addresses,
	})
}
