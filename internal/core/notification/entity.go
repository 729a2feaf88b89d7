package notification

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"weatherhome.app/internal/core/weather"
	"weatherhome.app/internal/ports"
)

// Local notification constants
const (
	DefaultChannelID   = "weqs-123-wede"
	DefaultChannelName = "Weather App"

	FireOffset      = 3 * time.Second
	ActivationDelay = 5 * time.Second
	RepeatMinute    = "minute"

	LargeIcon = "ic_launcher"
	SmallIcon = "ic_notification"

	iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"
)

// ErrNoWeatherData is returned when there is no current-location entry to announce
var ErrNoWeatherData = stderrors.New("no current weather data available")

// Mode selects how an activation waits for weather data
type Mode string

const (
	// ModeAwaitData schedules as soon as current weather arrives, giving up at the deadline
	ModeAwaitData Mode = "await"
	// ModeFixedDelay waits the full delay and reads whatever data is present
	ModeFixedDelay Mode = "fixed"
)

// ParseMode converts a configuration string to a Mode. Unknown values fall back to ModeAwaitData.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFixedDelay:
		return ModeFixedDelay
	default:
		return ModeAwaitData
	}
}

// Request describes one local notification to be scheduled
type Request struct {
	ID              string    `validate:"required,uuid4"`
	ChannelID       string    `validate:"required"`
	Title           string    `validate:"required"`
	Message         string    `validate:"required"`
	FireAt          time.Time `validate:"required"`
	LargeIcon       string
	LargeIconURL    string `validate:"omitempty,url"`
	SmallIcon       string
	BigLargeIcon    string
	BigLargeIconURL string `validate:"omitempty,url"`
	Repeat          string `validate:"omitempty,oneof=minute hour day week"`
}

var validate = validator.New()

// Validate checks the request fields
func (r Request) Validate() error {
	return validate.Struct(r)
}

// ToPorts converts the request to the notifier's representation
func (r Request) ToPorts() ports.LocalNotification {
	return ports.LocalNotification{
		ID:              r.ID,
		ChannelID:       r.ChannelID,
		Title:           r.Title,
		Message:         r.Message,
		FireAt:          r.FireAt,
		LargeIcon:       r.LargeIcon,
		LargeIconURL:    r.LargeIconURL,
		SmallIcon:       r.SmallIcon,
		BigLargeIcon:    r.BigLargeIcon,
		BigLargeIconURL: r.BigLargeIconURL,
		RepeatType:      r.Repeat,
	}
}

// IconURL builds the remote image URL for a weather icon code
func IconURL(icon string) string {
	return fmt.Sprintf(iconURLFormat, icon)
}

// FormatMessage renders the notification body for a temperature in Celsius
func FormatMessage(temp float64) string {
	return "Current temperature is " + strconv.FormatFloat(temp, 'f', -1, 64) + "°C"
}

// NewRequest builds the request announcing the given snapshot
func NewRequest(channelID string, snapshot weather.CurrentSnapshot, now time.Time) Request {
	iconURL := IconURL(snapshot.Icon)
	return Request{
		ID:              uuid.NewString(),
		ChannelID:       channelID,
		Title:           snapshot.Name,
		Message:         FormatMessage(snapshot.Temp),
		FireAt:          now.Add(FireOffset),
		LargeIcon:       LargeIcon,
		LargeIconURL:    iconURL,
		SmallIcon:       SmallIcon,
		BigLargeIcon:    LargeIcon,
		BigLargeIconURL: iconURL,
		Repeat:          RepeatMinute,
	}
}
