package documents

import (
	"context"
	"encoding/json"
	"testing"

	"minutebook-backend/internal/application/captable"
	"minutebook-backend/internal/application/people"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDocService(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Address{},
		&domain.Org{},
		&domain.Person{},
		&domain.RoleAssignment{},
		&domain.ShareClass{},
		&domain.ShareIssuance{},
		&domain.ShareTransfer{},
		&domain.Template{},
		&domain.GeneratedDocument{},
		&domain.AuditLog{},
	))

	org := &domain.Org{Name: "Acme Inc", Jurisdiction: "BC", CreatedBy: uuid.New()}
	require.NoError(t, db.Create(org).Error)

	s := &Service{
		DB:       db,
		CapTable: &captable.Service{DB: db},
		People:   &people.Service{DB: db},
	}
	return s, db, org.OrgID
}

func TestCreateTemplate_SystemLevelAudit(t *testing.T) {
	s, db, _ := setupDocService(t)
	actor := uuid.New()

	tmpl, err := s.CreateTemplate(context.Background(), CreateTemplateInput{
		Name:    "Share Certificate",
		FileKey: "templates/1700000000-cert.docx",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, actor, tmpl.UploadedBy)

	var entry domain.AuditLog
	require.NoError(t, db.Where("action = ?", constants.ActionUploadTemplate).First(&entry).Error)
	assert.Nil(t, entry.OrgID)
	assert.Equal(t, actor, entry.ActorID)
}

func TestCreateTemplate_MissingFields(t *testing.T) {
	s, _, _ := setupDocService(t)
	_, err := s.CreateTemplate(context.Background(), CreateTemplateInput{Name: "No Key"}, uuid.New())
	assert.ErrorIs(t, err, ErrNameFileKeyRequired)
}

func TestListTemplates_CategoryFilter(t *testing.T) {
	s, _, _ := setupDocService(t)
	actor := uuid.New()

	cert := "certificates"
	_, err := s.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: "Share Certificate", Category: &cert, FileKey: "templates/a.docx",
	}, actor)
	require.NoError(t, err)
	_, err = s.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: "Board Resolution", FileKey: "templates/b.docx",
	}, actor)
	require.NoError(t, err)

	all, err := s.ListTemplates(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := s.ListTemplates(context.Background(), &cert)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Share Certificate", filtered[0].Name)
}

func TestBuildSnapshot_IncludesOrgPeopleCapTable(t *testing.T) {
	s, _, orgID := setupDocService(t)
	actor := uuid.New()

	out, err := s.People.AddPerson(context.Background(), orgID, people.PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, []people.RoleInput{{Role: constants.RoleShareholder}}, actor)
	require.NoError(t, err)

	class, err := s.CapTable.CreateShareClass(context.Background(), orgID, captable.ShareClassInput{
		Name: "Common", ShortCode: "CMN",
	}, actor)
	require.NoError(t, err)

	pid := out.PersonID
	_, err = s.CapTable.IssueShares(context.Background(), orgID, captable.IssueSharesInput{
		ShareholderType: domain.ShareholderPerson,
		ShareholderID:   &pid,
		ShareClassID:    class.ShareClassID,
		Quantity:        1000,
		CertNumber:      "C-001",
	}, actor)
	require.NoError(t, err)

	snap, err := s.BuildSnapshot(context.Background(), orgID)
	require.NoError(t, err)
	require.NotNil(t, snap.Org)
	assert.Equal(t, orgID, snap.Org.OrgID)
	require.Len(t, snap.People, 1)
	require.NotNil(t, snap.CapTable)
	assert.EqualValues(t, 1000, snap.CapTable.Total)
}

func TestBuildSnapshot_OrgNotFound(t *testing.T) {
	s, _, _ := setupDocService(t)
	_, err := s.BuildSnapshot(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrgNotFound)
}

func TestRecordGenerated_StoresSnapshotAndAudits(t *testing.T) {
	s, db, orgID := setupDocService(t)
	actor := uuid.New()

	tmpl, err := s.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: "Share Certificate", FileKey: "templates/a.docx",
	}, actor)
	require.NoError(t, err)

	snap, err := s.BuildSnapshot(context.Background(), orgID)
	require.NoError(t, err)

	doc, err := s.RecordGenerated(context.Background(), orgID, tmpl.TemplateID, "documents/out.pdf", snap, actor)
	require.NoError(t, err)

	var stored Snapshot
	require.NoError(t, json.Unmarshal(doc.DataUsed, &stored))
	require.NotNil(t, stored.Org)
	assert.Equal(t, orgID, stored.Org.OrgID)

	var entry domain.AuditLog
	require.NoError(t, db.Where("org_id = ? AND action = ?", orgID, constants.ActionGenerateDocument).First(&entry).Error)
	assert.Equal(t, actor, entry.ActorID)
}

func TestRecordGenerated_TemplateNotFound(t *testing.T) {
	s, db, orgID := setupDocService(t)

	_, err := s.RecordGenerated(context.Background(), orgID, uuid.New(), "documents/out.pdf", nil, uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.GeneratedDocument{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListGenerated_ScopedToOrg(t *testing.T) {
	s, db, orgID := setupDocService(t)
	actor := uuid.New()

	other := &domain.Org{Name: "Other Inc", Jurisdiction: "BC", CreatedBy: uuid.New()}
	require.NoError(t, db.Create(other).Error)

	tmpl, err := s.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: "Share Certificate", FileKey: "templates/a.docx",
	}, actor)
	require.NoError(t, err)

	_, err = s.RecordGenerated(context.Background(), orgID, tmpl.TemplateID, "documents/a.pdf", nil, actor)
	require.NoError(t, err)
	_, err = s.RecordGenerated(context.Background(), other.OrgID, tmpl.TemplateID, "documents/b.pdf", nil, actor)
	require.NoError(t, err)

	docs, err := s.ListGenerated(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "documents/a.pdf", docs[0].FileKey)
}
