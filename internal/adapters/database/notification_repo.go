package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// ChannelModel represents a registered notification channel
type ChannelModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

func (ChannelModel) TableName() string {
	return "notification_channels"
}

// NotificationModel represents a scheduled local notification
type NotificationModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ChannelID   string    `gorm:"index;not null"`
	Title       string    `gorm:"not null"`
	Message     string    `gorm:"not null"`
	FireAt      time.Time `gorm:"not null"`
	RepeatType  string
	Status      string `gorm:"index;not null"`
	DeliveredAt *time.Time
	Deliveries  int `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (NotificationModel) TableName() string {
	return "local_notifications"
}

// NotificationRepositoryAdapter implements the NotificationRepository port using GORM
type NotificationRepositoryAdapter struct {
	db *gorm.DB
}

func NewNotificationRepositoryAdapter(db *gorm.DB) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{db: db}
}

// SaveChannel registers a channel and reports whether it was newly created
func (r *NotificationRepositoryAdapter) SaveChannel(ctx context.Context, channel ports.NotificationChannel) (bool, error) {
	if channel.ID == "" {
		return false, errors.NewValidationError("channel ID cannot be empty")
	}

	model := &ChannelModel{ID: channel.ID, Name: channel.Name}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return false, errors.NewDatabaseError("failed to save notification channel", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryAdapter) ChannelExists(ctx context.Context, id string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&ChannelModel{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, errors.NewDatabaseError("failed to look up notification channel", result.Error)
	}
	return count > 0, nil
}

func (r *NotificationRepositoryAdapter) SaveNotification(ctx context.Context, record *ports.NotificationRecord) error {
	if record == nil {
		return errors.NewValidationError("notification cannot be nil")
	}
	if record.ID == "" {
		return errors.NewValidationError("notification ID cannot be empty")
	}
	if record.Status == "" {
		record.Status = ports.NotificationStatusPending
	}

	model := recordToModel(record)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save notification", result.Error)
	}

	record.CreatedAt = model.CreatedAt
	return nil
}

// CancelPending marks every pending notification cancelled
func (r *NotificationRepositoryAdapter) CancelPending(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("status = ?", ports.NotificationStatusPending).
		Update("status", ports.NotificationStatusCancelled)
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to cancel pending notifications", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepositoryAdapter) RecordDelivery(ctx context.Context, id string, at time.Time) error {
	if id == "" {
		return errors.NewValidationError("notification ID cannot be empty")
	}

	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivered_at": at,
			"deliveries":   gorm.Expr("deliveries + 1"),
		})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to record notification delivery", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification not found")
	}
	return nil
}

// ListNotifications returns notifications with the given status, or all when status is empty
func (r *NotificationRepositoryAdapter) ListNotifications(ctx context.Context, status string) ([]*ports.NotificationRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var models []NotificationModel
	if result := query.Find(&models); result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list notifications", result.Error)
	}

	records := make([]*ports.NotificationRecord, len(models))
	for i := range models {
		records[i] = modelToRecord(&models[i])
	}
	return records, nil
}

// FindNotification retrieves one notification by ID
func (r *NotificationRepositoryAdapter) FindNotification(ctx context.Context, id string) (*ports.NotificationRecord, error) {
	var model NotificationModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("notification not found")
		}
		return nil, errors.NewDatabaseError("failed to find notification", result.Error)
	}
	return modelToRecord(&model), nil
}

func recordToModel(record *ports.NotificationRecord) *NotificationModel {
	return &NotificationModel{
		ID:          record.ID,
		ChannelID:   record.ChannelID,
		Title:       record.Title,
		Message:     record.Message,
		FireAt:      record.FireAt,
		RepeatType:  record.RepeatType,
		Status:      record.Status,
		DeliveredAt: record.DeliveredAt,
		Deliveries:  record.Deliveries,
		CreatedAt:   record.CreatedAt,
	}
}

func modelToRecord(model *NotificationModel) *ports.NotificationRecord {
	return &ports.NotificationRecord{
		ID:          model.ID,
		ChannelID:   model.ChannelID,
		Title:       model.Title,
		Message:     model.Message,
		FireAt:      model.FireAt,
		RepeatType:  model.RepeatType,
		Status:      model.Status,
		DeliveredAt: model.DeliveredAt,
		Deliveries:  model.Deliveries,
		CreatedAt:   model.CreatedAt,
	}
}
