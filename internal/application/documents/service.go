package documents

import (
	"context"
	"encoding/json"
	"strings"

	"minutebook-backend/internal/application/audit"
	"minutebook-backend/internal/application/captable"
	"minutebook-backend/internal/application/people"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service manages template pointer records, generated-document pointer
// records, and the read-only snapshot handed to the external renderer.
// Rendering itself happens outside this service.
type Service struct {
	DB       *gorm.DB
	CapTable *captable.Service
	People   *people.Service
}

// CreateTemplateInput registers a template after its file has been
// uploaded to object storage via a signed URL.
type CreateTemplateInput struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
	FileKey  string  `json:"file_key"`
}

// CreateTemplate persists the template record and audits UPLOAD_TEMPLATE
// (system-level entry: templates are not scoped to an org).
func (s *Service) CreateTemplate(ctx context.Context, in CreateTemplateInput, actorID uuid.UUID) (*domain.Template, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.FileKey) == "" {
		return nil, ErrNameFileKeyRequired
	}
	tmpl := &domain.Template{
		Name:       strings.TrimSpace(in.Name),
		Category:   in.Category,
		FileKey:    strings.TrimSpace(in.FileKey),
		UploadedBy: actorID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tmpl).Error; err != nil {
			return err
		}
		return audit.Record(tx, nil, actorID, constants.ActionUploadTemplate, map[string]interface{}{
			"template_id": tmpl.TemplateID.String(),
			"name":        tmpl.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// ListTemplates returns templates, optionally filtered by category.
func (s *Service) ListTemplates(ctx context.Context, category *string) ([]domain.Template, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if category != nil && *category != "" {
		q = q.Where("category = ?", *category)
	}
	var templates []domain.Template
	if err := q.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Snapshot is the read-only payload consumed by the external templating
// service: the org, its cap table, and its people with roles.
type Snapshot struct {
	Org      *domain.Org              `json:"org"`
	CapTable *captable.CapTable       `json:"cap_table"`
	People   []people.PersonWithRoles `json:"people"`
}

// BuildSnapshot assembles the org/cap-table/people payload for rendering.
func (s *Service) BuildSnapshot(ctx context.Context, orgID uuid.UUID) (*Snapshot, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	var org domain.Org
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	table, err := s.CapTable.ComputeCapTable(ctx, orgID)
	if err != nil {
		return nil, err
	}
	folks, err := s.People.ListPeopleWithRoles(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Org: &org, CapTable: table, People: folks}, nil
}

// RecordGenerated persists the generated-document pointer with the
// snapshot it was rendered from, plus the GENERATE_DOCUMENT audit row, in
// one transaction.
func (s *Service) RecordGenerated(ctx context.Context, orgID, templateID uuid.UUID, fileKey string, snapshot *Snapshot, actorID uuid.UUID) (*domain.GeneratedDocument, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if strings.TrimSpace(fileKey) == "" {
		return nil, ErrFileKeyRequired
	}

	dataUsed, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	doc := &domain.GeneratedDocument{
		OrgID:      orgID,
		TemplateID: templateID,
		FileKey:    strings.TrimSpace(fileKey),
		DataUsed:   datatypes.JSON(dataUsed),
		CreatedBy:  actorID,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tmpl domain.Template
		if err := tx.Where("template_id = ?", templateID).First(&tmpl).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTemplateNotFound
			}
			return err
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		return audit.Record(tx, &orgID, actorID, constants.ActionGenerateDocument, map[string]interface{}{
			"document_id": doc.DocumentID.String(),
			"template_id": templateID.String(),
			"file_key":    doc.FileKey,
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListGenerated returns an org's generated documents, newest first.
func (s *Service) ListGenerated(ctx context.Context, orgID uuid.UUID) ([]domain.GeneratedDocument, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	var docs []domain.GeneratedDocument
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
