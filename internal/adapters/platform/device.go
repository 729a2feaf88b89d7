package platform

import (
	"strings"
	"time"

	"weatherhome.app/internal/ports"
)

// Device is a fixed PlatformInfo read from configuration
type Device struct {
	os       string
	apiLevel int
}

func NewDevice(os string, apiLevel int) *Device {
	return &Device{os: strings.ToLower(os), apiLevel: apiLevel}
}

func (d *Device) OS() string {
	return d.os
}

// APILevel is meaningful on Android only
func (d *Device) APILevel() int {
	if d.os != ports.OSAndroid {
		return 0
	}
	return d.apiLevel
}

// SystemClock implements ports.Clock with wall time
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
