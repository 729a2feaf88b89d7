package mocks

import (
	"context"
	"sync"

	"weatherhome.app/internal/ports"
)

// LogEntry is one line captured by Logger
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// Logger records log calls for assertions
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...ports.Field) { l.record("DEBUG", msg, fields) }
func (l *Logger) Info(msg string, fields ...ports.Field)  { l.record("INFO", msg, fields) }
func (l *Logger) Warn(msg string, fields ...ports.Field)  { l.record("WARN", msg, fields) }
func (l *Logger) Error(msg string, fields ...ports.Field) { l.record("ERROR", msg, fields) }

func (l *Logger) record(level, msg string, fields []ports.Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{}, len(fields))}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a copy of captured log lines
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Find returns the first entry with the given message
func (l *Logger) Find(msg string) (LogEntry, bool) {
	for _, e := range l.Entries() {
		if e.Message == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}

// Metrics counts workflow metric calls
type Metrics struct {
	mu     sync.Mutex
	Counts map[string]int
}

func NewMetrics() *Metrics {
	return &Metrics{Counts: make(map[string]int)}
}

func (m *Metrics) inc(key string) {
	m.mu.Lock()
	m.Counts[key]++
	m.mu.Unlock()
}

func (m *Metrics) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[key]
}

func (m *Metrics) RecordConnectivity(_ context.Context, state string) { m.inc("connectivity:" + state) }
func (m *Metrics) RecordPermission(_ context.Context, state string)   { m.inc("permission:" + state) }
func (m *Metrics) RecordLocation(_ context.Context, outcome string)   { m.inc("location:" + outcome) }
func (m *Metrics) RecordNotification(_ context.Context, outcome string) {
	m.inc("notification:" + outcome)
}
func (m *Metrics) RecordWeatherAPICall(_ context.Context, provider string, success bool) {
	if success {
		m.inc("weather:" + provider + ":ok")
		return
	}
	m.inc("weather:" + provider + ":fail")
}

// ConfigProvider serves fixed config views
type ConfigProvider struct {
	Weather      ports.WeatherConfig
	Server       ports.ServerConfig
	Platform     ports.PlatformConfig
	Location     ports.LocationConfig
	Notification ports.NotificationConfig
	Cache        ports.CacheConfig
}

func (c *ConfigProvider) GetWeatherConfig() ports.WeatherConfig           { return c.Weather }
func (c *ConfigProvider) GetServerConfig() ports.ServerConfig             { return c.Server }
func (c *ConfigProvider) GetPlatformConfig() ports.PlatformConfig         { return c.Platform }
func (c *ConfigProvider) GetLocationConfig() ports.LocationConfig         { return c.Location }
func (c *ConfigProvider) GetNotificationConfig() ports.NotificationConfig { return c.Notification }
func (c *ConfigProvider) GetCacheConfig() ports.CacheConfig               { return c.Cache }
