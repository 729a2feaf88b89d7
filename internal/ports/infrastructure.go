package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache    bool
	CacheTTL       time.Duration
	CityIDs        []int64
	RefreshTimeout time.Duration
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
	Mode string
}

// PlatformConfig represents the host platform the screen runs on
type PlatformConfig struct {
	OS                  string
	APILevel            int
	PermissionPolicy    string
	ReachabilityTarget  string
	ReachabilityTimeout time.Duration
}

// LocationConfig represents location acquisition settings
type LocationConfig struct {
	Source               string
	Timeout              time.Duration
	MaximumAge           time.Duration
	DistanceFilter       float64
	EnableHighAccuracy   bool
	ForceRequestLocation bool
	ShowLocationDialog   bool
}

// NotificationConfig represents local notification settings
type NotificationConfig struct {
	ChannelID       string
	ChannelName     string
	Delay           time.Duration
	Mode            string
	DeliveryURLs    []string
	DeliveryTimeout time.Duration
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetServerConfig() ServerConfig
	GetPlatformConfig() PlatformConfig
	GetLocationConfig() LocationConfig
	GetNotificationConfig() NotificationConfig
	GetCacheConfig() CacheConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for workflow metrics collection
type MetricsCollector interface {
	RecordConnectivity(ctx context.Context, state string)
	RecordPermission(ctx context.Context, state string)
	RecordLocation(ctx context.Context, outcome string)
	RecordNotification(ctx context.Context, outcome string)
	RecordWeatherAPICall(ctx context.Context, provider string, success bool)
}
