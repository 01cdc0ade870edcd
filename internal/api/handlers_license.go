package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"license-gateway/internal/auth"
	"license-gateway/internal/database"
)

// maxUserSentinel forces a license's max_users to 1 regardless of any
// numeric value supplied alongside it.
const maxUserSentinel = "ALWAYS"

// handleCreateLicense creates a standalone license. Note the admin secret
// arrives in the AdminKey parameter here, unlike every other admin endpoint;
// that asymmetry is part of the wire contract.
func (s *Server) handleCreateLicense(c *gin.Context) {
	licenseKey := c.Query("Licence")
	expirationDate := c.Query("ExpirationDate")
	maxUsersParam := c.DefaultQuery("MAXUSER", "1")
	adminKey := c.Query("AdminKey")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	expDate, err := database.ParseExpirationDate(expirationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid expiration date"})
		return
	}

	maxUsers := 1
	if maxUsersParam != maxUserSentinel {
		maxUsers, err = strconv.Atoi(maxUsersParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "invalid max user"})
			return
		}
	}

	license := &database.License{
		LicenseKey:     licenseKey,
		ExpirationDate: expDate,
		MaxUsers:       maxUsers,
	}

	if err := s.store.CreateLicense(c.Request.Context(), license); err != nil {
		s.logger.Error().Err(err).Msg("license create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "license created"})
}

// handleDeleteLicense deletes a license looked up by its key string.
func (s *Server) handleDeleteLicense(c *gin.Context) {
	licenseKey := c.Query("Licence")
	adminKey := c.Query("Key")

	if !auth.ValidateKey(adminKey, s.keys.Admin) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	license, err := s.store.GetLicenseByKey(ctx, licenseKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("license lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}
	if license == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "license not found"})
		return
	}

	if err := s.store.DeleteLicense(ctx, license.ID); err != nil {
		s.logger.Error().Err(err).Int("license_id", license.ID).Msg("license delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "license deleted"})
}
