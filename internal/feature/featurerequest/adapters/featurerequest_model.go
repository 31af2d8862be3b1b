package adapters

import (
	"time"

	"github.com/google/uuid"

	"featureboard_backend/internal/feature/featurerequest/domain/entity"
)

// FeatureRequestModel is the GORM model for the feature_requests table.
// Column names use snake_case; the entity uses Go field names.
type FeatureRequestModel struct {
	ID             uuid.UUID `gorm:"primaryKey;size:36"`
	Title          string    `gorm:"size:200;not null"`
	Description    string    `gorm:"type:text;not null"`
	UserName       *string   `gorm:"size:100"`
	UserEmail      *string   `gorm:"size:255"`
	Priority       string    `gorm:"size:16;not null"`
	Status         string    `gorm:"size:16;not null;index"`
	Votes          int       `gorm:"not null;default:0;index:idx_feature_requests_ranking,priority:1,sort:desc"`
	IsHidden       bool      `gorm:"not null;default:false;index"`
	IdempotencyKey *string   `gorm:"size:128;uniqueIndex"`
	CreatedAt      time.Time `gorm:"not null;index:idx_feature_requests_ranking,priority:2,sort:desc"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (FeatureRequestModel) TableName() string {
	return "feature_requests"
}

// ToEntity converts the GORM model to a domain entity.
func (m *FeatureRequestModel) ToEntity() *entity.FeatureRequest {
	return &entity.FeatureRequest{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		UserName:    m.UserName,
		UserEmail:   m.UserEmail,
		Priority:    entity.Priority(m.Priority),
		Status:      entity.Status(m.Status),
		Votes:       m.Votes,
		IsHidden:    m.IsHidden,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FeatureRequestModelFromEntity converts a domain entity to a GORM model.
// An empty idempotencyKey is stored as NULL so the unique index ignores it.
func FeatureRequestModelFromEntity(fr *entity.FeatureRequest, idempotencyKey string) *FeatureRequestModel {
	m := &FeatureRequestModel{
		ID:          fr.ID,
		Title:       fr.Title,
		Description: fr.Description,
		UserName:    fr.UserName,
		UserEmail:   fr.UserEmail,
		Priority:    string(fr.Priority),
		Status:      string(fr.Status),
		Votes:       fr.Votes,
		IsHidden:    fr.IsHidden,
		CreatedAt:   fr.CreatedAt,
		UpdatedAt:   fr.UpdatedAt,
	}
	if idempotencyKey != "" {
		m.IdempotencyKey = &idempotencyKey
	}
	return m
}
