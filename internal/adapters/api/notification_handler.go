package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// NotificationResponse is one stored notification
type NotificationResponse struct {
	ID          string     `json:"id"`
	ChannelID   string     `json:"channel_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	FireAt      time.Time  `json:"fire_at"`
	Repeat      string     `json:"repeat"`
	Status      string     `json:"status"`
	Deliveries  int        `json:"deliveries"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// listNotifications handles GET /api/notifications requests
func (s *HTTPServerAdapter) listNotifications(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", ports.NotificationStatusPending, ports.NotificationStatusCancelled:
	default:
		s.handleError(c, errors.NewValidationError("status must be one of: pending, cancelled"))
		return
	}

	records, err := s.notifications.ListNotifications(c.Request.Context(), status)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response := make([]NotificationResponse, 0, len(records))
	for _, r := range records {
		response = append(response, NotificationResponse{
			ID:          r.ID,
			ChannelID:   r.ChannelID,
			Title:       r.Title,
			Message:     r.Message,
			FireAt:      r.FireAt,
			Repeat:      r.RepeatType,
			Status:      r.Status,
			Deliveries:  r.Deliveries,
			DeliveredAt: r.DeliveredAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"notifications": response})
}

// pendingNotifications handles GET /api/notifications/pending requests
func (s *HTTPServerAdapter) pendingNotifications(c *gin.Context) {
	pending, err := s.notifier.PendingNotifications(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
