package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"license-gateway/internal/auth"
	"license-gateway/internal/cache"
	"license-gateway/internal/database"
)

// accountSummaryResponse is one row of the /ShowAvailableAccounts listing.
type accountSummaryResponse struct {
	AccountName    string    `json:"account_name"`
	Username       string    `json:"username"`
	ExpirationDate time.Time `json:"expiration_date"`
	Devices        int       `json:"devices"`
}

// handleShowAccountDetail returns the full admin view of one account,
// password included.
func (s *Server) handleShowAccountDetail(c *gin.Context) {
	username := c.Query("Username")
	password := c.Query("Password")
	adminKey := c.Query("Key")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	account, err := s.store.GetAccountByCredentials(ctx, username, password)
	if err != nil {
		s.logger.Error().Err(err).Msg("account lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "account not found"})
		return
	}

	devices, err := s.store.ListDevices(ctx, account.ID)
	if err != nil {
		s.logger.Error().Err(err).Int("account_id", account.ID).Msg("device listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	deviceList := make([]gin.H, 0, len(devices))
	for _, d := range devices {
		deviceList = append(deviceList, gin.H{"ip": d.IPAddress, "last_login": d.LastLogin})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"username":        account.Username,
		"password":        account.Password,
		"created_date":    account.CreatedDate,
		"expiration_date": account.ExpirationDate,
		"max_users":       account.MaxUsers,
		"devices":         deviceList,
	})
}

// handleShowAvailableAccounts lists every account with its device count.
// The listing is served from Redis when a fresh copy exists.
func (s *Server) handleShowAvailableAccounts(c *gin.Context) {
	adminKey := c.Query("Key")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	if s.cache != nil {
		var cached []accountSummaryResponse
		if err := s.cache.GetJSON(ctx, cache.AccountListKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"status": "success", "accounts": cached})
			return
		}
	}

	summaries, err := s.store.ListAccountSummaries(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("account listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	result := make([]accountSummaryResponse, 0, len(summaries))
	for _, acc := range summaries {
		result = append(result, accountSummaryResponse{
			AccountName:    FormatAccountName(acc.ID),
			Username:       acc.Username,
			ExpirationDate: acc.ExpirationDate,
			Devices:        acc.DeviceCount,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.AccountListKey, result, cache.AccountListTTL); err != nil {
			s.logger.Debug().Err(err).Msg("account list cache write failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "accounts": result})
}

// handleDeleteAccount deletes an account by its synthetic wire name. The
// devices go with it via the cascade.
func (s *Server) handleDeleteAccount(c *gin.Context) {
	accountName := c.Query("AccountName")
	adminKey := c.Query("Key")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	accountID, err := ParseAccountName(accountName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid account name"})
		return
	}

	ctx := c.Request.Context()

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		s.logger.Error().Err(err).Int("account_id", accountID).Msg("account lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "account not found"})
		return
	}

	if err := s.store.DeleteAccount(ctx, accountID); err != nil {
		s.logger.Error().Err(err).Int("account_id", accountID).Msg("account delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	s.invalidateAccountList(ctx)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// handleCreateAccount creates an account from query parameters. The store
// assigns the id, which comes back as the synthetic account name.
func (s *Server) handleCreateAccount(c *gin.Context) {
	username := c.Query("Username")
	password := c.Query("Password")
	expirationDate := c.Query("ExpirationDate")
	maxUsersParam := c.DefaultQuery("MaxUser", "1")
	adminKey := c.Query("Key")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	expDate, err := database.ParseExpirationDate(expirationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid expiration date"})
		return
	}

	maxUsers, err := strconv.Atoi(maxUsersParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid max user"})
		return
	}

	account := &database.Account{
		Username:       username,
		Password:       password,
		ExpirationDate: expDate,
		MaxUsers:       maxUsers,
	}

	ctx := c.Request.Context()
	if err := s.store.CreateAccount(ctx, account); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("account create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	s.invalidateAccountList(ctx)
	c.JSON(http.StatusCreated, gin.H{
		"status":       "created",
		"account_name": FormatAccountName(account.ID),
	})
}
