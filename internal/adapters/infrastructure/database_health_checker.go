package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherhome.app/internal/adapters/database"
	"weatherhome.app/internal/ports"
)

// DatabaseHealthChecker reports whether the notifier store is reachable and migrated
type DatabaseHealthChecker struct {
	db *gorm.DB
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}
	status.Details["driver"] = d.db.Name()

	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	migrator := d.db.WithContext(ctx).Migrator()
	for _, model := range []interface{}{&database.ChannelModel{}, &database.NotificationModel{}} {
		if !migrator.HasTable(model) {
			return unhealthy(status, "notifier schema is not migrated")
		}
	}

	var pending int64
	if err := d.db.WithContext(ctx).Model(&database.NotificationModel{}).
		Where("status = ?", ports.NotificationStatusPending).Count(&pending).Error; err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = statusHealthy
	status.Details["open_connections"] = sqlDB.Stats().OpenConnections
	status.Details["pending_notifications"] = pending
	return status
}
