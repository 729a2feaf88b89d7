package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Platform
	Platform     PlatformInfo
	Reachability NetworkReachability
	Permissions  LocationPermissionAPI
	Positions    PositionProvider
	Navigator    Navigator
	Clock        Clock

	// Weather
	WeatherProvider WeatherProvider
	WeatherCache    WeatherCache
	WeatherMetrics  WeatherMetrics

	// Notification
	LocalNotifier          LocalNotifier
	NotificationRepository NotificationRepository

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
	Database       interface{}
}
