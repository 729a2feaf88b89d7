package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// PermissionPolicyRequest changes the simulated answer to the permission prompt
type PermissionPolicyRequest struct {
	Policy string `json:"policy" binding:"required,oneof=granted denied never_ask_again"`
}

// getScreen handles GET /api/screen requests
func (s *HTTPServerAdapter) getScreen(c *gin.Context) {
	c.JSON(http.StatusOK, s.screen.View())
}

// retry handles POST /api/screen/retry requests
func (s *HTTPServerAdapter) retry(c *gin.Context) {
	if err := s.screen.Retry(c.Request.Context()); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.screen.View())
}

// selectItem handles POST /api/screen/items/:id/select requests
func (s *HTTPServerAdapter) selectItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.handleError(c, errors.NewValidationError("item id must be an integer"))
		return
	}

	if err := s.screen.SelectItem(id); err != nil {
		s.handleError(c, err)
		return
	}

	history := s.navigation.History()
	c.JSON(http.StatusOK, history[len(history)-1])
}

// getNavigation handles GET /api/navigation requests
func (s *HTTPServerAdapter) getNavigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": s.navigation.History()})
}

// getPermissionPolicy handles GET /api/platform/permission requests
func (s *HTTPServerAdapter) getPermissionPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"policy": s.permissions.Policy()})
}

// setPermissionPolicy handles PUT /api/platform/permission requests
func (s *HTTPServerAdapter) setPermissionPolicy(c *gin.Context) {
	var req PermissionPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("policy must be one of: granted, denied, never_ask_again"))
		return
	}

	if err := s.permissions.SetPolicy(req.Policy); err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("Permission policy changed", ports.F("policy", req.Policy))
	c.JSON(http.StatusOK, gin.H{"policy": s.permissions.Policy()})
}
