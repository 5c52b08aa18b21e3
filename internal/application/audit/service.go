package audit

import (
	"context"
	"encoding/json"
	"errors"

	"minutebook-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrActorRequired = errors.New("actor_id is required")

// Record appends one audit entry on the caller's DB handle. Mutating
// services call this with their open transaction so the mutation and its
// audit row commit or roll back together. orgID is nil for system-level
// actions.
func Record(tx *gorm.DB, orgID *uuid.UUID, actorID uuid.UUID, action string, payload map[string]interface{}) error {
	if actorID == uuid.Nil {
		return ErrActorRequired
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := &domain.AuditLog{
		OrgID:   orgID,
		ActorID: actorID,
		Action:  action,
		Payload: datatypes.JSON(b),
	}
	return tx.Create(entry).Error
}

// Service exposes read-only access to the audit trail. There is no update
// or delete path.
type Service struct {
	DB *gorm.DB
}

// ListForOrg returns an org's audit entries, newest first.
func (s *Service) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]domain.AuditLog, error) {
	if orgID == uuid.Nil {
		return nil, errors.New("org_id is required")
	}
	var entries []domain.AuditLog
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll returns every audit entry, newest first, org-level and system-level.
func (s *Service) ListAll(ctx context.Context) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
