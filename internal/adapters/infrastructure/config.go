package infrastructure

import (
	"time"

	"weatherhome.app/internal/config"
	"weatherhome.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
		Mode: c.config.Server.Mode,
	}
}

func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache:    c.config.Weather.EnableCache,
		CacheTTL:       time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		CityIDs:        append([]int64(nil), c.config.Weather.CityIDs...),
		RefreshTimeout: time.Duration(c.config.Weather.RequestTimeoutSeconds) * time.Second,
	}
}

func (c *ConfigProviderAdapter) GetPlatformConfig() ports.PlatformConfig {
	return ports.PlatformConfig{
		OS:                  c.config.Platform.OS,
		APILevel:            c.config.Platform.APILevel,
		PermissionPolicy:    c.config.Platform.PermissionPolicy,
		ReachabilityTarget:  c.config.Platform.ReachabilityTarget,
		ReachabilityTimeout: time.Duration(c.config.Platform.ReachabilityTimeoutSeconds) * time.Second,
	}
}

func (c *ConfigProviderAdapter) GetLocationConfig() ports.LocationConfig {
	return ports.LocationConfig{
		Source:               c.config.Location.Source,
		Timeout:              time.Duration(c.config.Location.TimeoutSeconds) * time.Second,
		MaximumAge:           time.Duration(c.config.Location.MaximumAgeSeconds) * time.Second,
		DistanceFilter:       c.config.Location.DistanceFilter,
		EnableHighAccuracy:   c.config.Location.EnableHighAccuracy,
		ForceRequestLocation: c.config.Location.ForceRequestLocation,
		ShowLocationDialog:   c.config.Location.ShowLocationDialog,
	}
}

func (c *ConfigProviderAdapter) GetNotificationConfig() ports.NotificationConfig {
	return ports.NotificationConfig{
		ChannelID:       c.config.Notification.ChannelID,
		ChannelName:     c.config.Notification.ChannelName,
		Delay:           time.Duration(c.config.Notification.DelayMillis) * time.Millisecond,
		Mode:            c.config.Notification.Mode,
		DeliveryURLs:    append([]string(nil), c.config.Notification.DeliveryURLs...),
		DeliveryTimeout: time.Duration(c.config.Notification.DeliveryTimeoutSeconds) * time.Second,
	}
}

func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}
