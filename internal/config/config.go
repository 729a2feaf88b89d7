package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherhome.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535
	maxLatitude        = 90
	maxLongitude       = 180
)

// Config represents the application configuration structure
type Config struct {
	Server       ServerConfig       `split_words:"true"`
	Platform     PlatformConfig     `split_words:"true"`
	Location     LocationConfig     `split_words:"true"`
	Weather      WeatherConfig      `split_words:"true"`
	Cache        CacheConfig        `split_words:"true"`
	Database     DatabaseConfig     `split_words:"true"`
	Notification NotificationConfig `split_words:"true"`
	Scheduler    SchedulerConfig    `split_words:"true"`
	LogLevel     string             `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
	Mode string `envconfig:"GIN_MODE" default:"release"`
}

type PlatformConfig struct {
	OS                         string `envconfig:"PLATFORM_OS" default:"android"`
	APILevel                   int    `envconfig:"PLATFORM_API_LEVEL" default:"30"`
	PermissionPolicy           string `envconfig:"PLATFORM_PERMISSION_POLICY" default:"granted"`
	ReachabilityTarget         string `envconfig:"PLATFORM_REACHABILITY_URL" default:"https://clients3.google.com/generate_204"`
	ReachabilityTimeoutSeconds int    `envconfig:"PLATFORM_REACHABILITY_TIMEOUT" default:"3"`
}

type LocationConfig struct {
	Source               string  `envconfig:"LOCATION_SOURCE" default:"static"`
	Latitude             float64 `envconfig:"LOCATION_LATITUDE" default:"18.5204"`
	Longitude            float64 `envconfig:"LOCATION_LONGITUDE" default:"73.8567"`
	GeoIPURL             string  `envconfig:"LOCATION_GEOIP_URL" default:"http://ip-api.com/json"`
	TimeoutSeconds       int     `envconfig:"LOCATION_TIMEOUT" default:"15"`
	MaximumAgeSeconds    int     `envconfig:"LOCATION_MAXIMUM_AGE" default:"10"`
	DistanceFilter       float64 `envconfig:"LOCATION_DISTANCE_FILTER" default:"0"`
	EnableHighAccuracy   bool    `envconfig:"LOCATION_HIGH_ACCURACY" default:"false"`
	ForceRequestLocation bool    `envconfig:"LOCATION_FORCE_REQUEST" default:"false"`
	ShowLocationDialog   bool    `envconfig:"LOCATION_SHOW_DIALOG" default:"false"`
}

type WeatherConfig struct {
	OpenWeatherMapKey     string  `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string  `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	CityIDs               []int64 `envconfig:"WEATHER_CITY_IDS" default:"1259229,1275339,1277333,1273294,1264527"`
	EnableCache           bool    `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging         bool    `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	CacheTTLMinutes       int     `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	RequestTimeoutSeconds int     `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"10"`
	LogFilePath           string  `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_provider.log"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// Supported database drivers
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"weatherhome.db"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"weatherhome"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	if c.Driver == DatabaseDriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type NotificationConfig struct {
	ChannelID              string   `envconfig:"NOTIFICATION_CHANNEL_ID" default:"weqs-123-wede"`
	ChannelName            string   `envconfig:"NOTIFICATION_CHANNEL_NAME" default:"Weather App"`
	Mode                   string   `envconfig:"NOTIFICATION_MODE" default:"await"`
	DelayMillis            int      `envconfig:"NOTIFICATION_DELAY_MS" default:"5000"`
	DeliveryURLs           []string `envconfig:"NOTIFICATION_DELIVERY_URLS" default:"logger://"`
	DeliveryTimeoutSeconds int      `envconfig:"NOTIFICATION_DELIVERY_TIMEOUT" default:"10"`
}

type SchedulerConfig struct {
	Timezone string `envconfig:"SCHEDULER_TIMEZONE" default:"UTC"`
}

// Location returns the scheduler time zone
func (s SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Platform.Validate(); err != nil {
		return err
	}
	if err := c.Location.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Notification.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	switch s.Mode {
	case "debug", "release", "test":
	default:
		return errors.NewConfigurationError("GIN_MODE must be one of: debug, release, test", nil)
	}
	return nil
}

func (p *PlatformConfig) Validate() error {
	switch p.OS {
	case "android", "ios":
	default:
		return errors.NewConfigurationError("PLATFORM_OS must be one of: android, ios", nil)
	}
	if p.APILevel < 0 {
		return errors.NewConfigurationError("PLATFORM_API_LEVEL cannot be negative", nil)
	}
	switch p.PermissionPolicy {
	case "granted", "denied", "never_ask_again":
	default:
		return errors.NewConfigurationError("PLATFORM_PERMISSION_POLICY must be one of: granted, denied, never_ask_again", nil)
	}
	if err := validateHTTPURL("PLATFORM_REACHABILITY_URL", p.ReachabilityTarget); err != nil {
		return err
	}
	if p.ReachabilityTimeoutSeconds < 1 {
		return errors.NewConfigurationError("PLATFORM_REACHABILITY_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (l *LocationConfig) Validate() error {
	switch l.Source {
	case "static":
		if l.Latitude < -maxLatitude || l.Latitude > maxLatitude {
			return errors.NewConfigurationError("LOCATION_LATITUDE must be between -90 and 90", nil)
		}
		if l.Longitude < -maxLongitude || l.Longitude > maxLongitude {
			return errors.NewConfigurationError("LOCATION_LONGITUDE must be between -180 and 180", nil)
		}
	case "geoip":
		if err := validateHTTPURL("LOCATION_GEOIP_URL", l.GeoIPURL); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("LOCATION_SOURCE must be one of: static, geoip", nil)
	}
	if l.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("LOCATION_TIMEOUT must be at least 1 second", nil)
	}
	if l.MaximumAgeSeconds < 0 {
		return errors.NewConfigurationError("LOCATION_MAXIMUM_AGE cannot be negative", nil)
	}
	if l.DistanceFilter < 0 {
		return errors.NewConfigurationError("LOCATION_DISTANCE_FILTER cannot be negative", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if w.OpenWeatherMapKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY must be configured", nil)
	}
	if err := validateHTTPURL("OPENWEATHERMAP_API_BASE_URL", w.OpenWeatherMapBaseURL); err != nil {
		return err
	}
	if len(w.CityIDs) == 0 {
		return errors.NewConfigurationError("WEATHER_CITY_IDS must list at least one city", nil)
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.RequestTimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DatabaseDriverSQLite:
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty", nil)
		}
		return nil
	case DatabaseDriverPostgres:
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (n *NotificationConfig) Validate() error {
	if n.ChannelID == "" {
		return errors.NewConfigurationError("NOTIFICATION_CHANNEL_ID cannot be empty", nil)
	}
	if n.ChannelName == "" {
		return errors.NewConfigurationError("NOTIFICATION_CHANNEL_NAME cannot be empty", nil)
	}
	switch n.Mode {
	case "await", "fixed":
	default:
		return errors.NewConfigurationError("NOTIFICATION_MODE must be one of: await, fixed", nil)
	}
	if n.DelayMillis < 1 {
		return errors.NewConfigurationError("NOTIFICATION_DELAY_MS must be positive", nil)
	}
	for _, raw := range n.DeliveryURLs {
		if _, err := url.Parse(raw); err != nil || !strings.Contains(raw, "://") {
			return errors.NewConfigurationError(fmt.Sprintf("invalid notification delivery URL: %q", raw), err)
		}
	}
	if n.DeliveryTimeoutSeconds < 1 {
		return errors.NewConfigurationError("NOTIFICATION_DELIVERY_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return errors.NewConfigurationError("SCHEDULER_TIMEZONE must be a valid IANA time zone", err)
	}
	return nil
}

func validateHTTPURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
