package audit

import (
	"context"
	"encoding/json"
	"testing"

	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AuditLog{}))
	return db
}

func TestRecord_RequiresActor(t *testing.T) {
	db := setupAuditDB(t)
	orgID := uuid.New()
	err := Record(db, &orgID, uuid.Nil, constants.ActionCreateOrg, nil)
	assert.ErrorIs(t, err, ErrActorRequired)
}

func TestRecord_PayloadRoundTrip(t *testing.T) {
	db := setupAuditDB(t)
	orgID := uuid.New()
	actor := uuid.New()

	require.NoError(t, Record(db, &orgID, actor, constants.ActionIssueShares, map[string]interface{}{
		"cert_number": "C-001",
		"quantity":    1000,
	}))

	var entry domain.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, actor, entry.ActorID)
	require.NotNil(t, entry.OrgID)
	assert.Equal(t, orgID, *entry.OrgID)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Payload, &payload))
	assert.Equal(t, "C-001", payload["cert_number"])
	assert.EqualValues(t, 1000, payload["quantity"])
}

func TestRecord_SystemLevelHasNilOrg(t *testing.T) {
	db := setupAuditDB(t)
	require.NoError(t, Record(db, nil, uuid.New(), constants.ActionUploadTemplate, nil))

	var entry domain.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Nil(t, entry.OrgID)
}

func TestRecord_RollsBackWithTransaction(t *testing.T) {
	db := setupAuditDB(t)
	orgID := uuid.New()

	errBoom := assert.AnError
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := Record(tx, &orgID, uuid.New(), constants.ActionCreateOrg, nil); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	var count int64
	require.NoError(t, db.Model(&domain.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListForOrg_NewestFirstAndScoped(t *testing.T) {
	db := setupAuditDB(t)
	s := &Service{DB: db}
	orgID := uuid.New()
	otherOrg := uuid.New()
	actor := uuid.New()

	require.NoError(t, Record(db, &orgID, actor, constants.ActionCreateOrg, nil))
	require.NoError(t, Record(db, &orgID, actor, constants.ActionAddPerson, nil))
	require.NoError(t, Record(db, &otherOrg, actor, constants.ActionCreateOrg, nil))
	require.NoError(t, Record(db, nil, actor, constants.ActionUploadTemplate, nil))

	entries, err := s.ListForOrg(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, constants.ActionAddPerson, entries[0].Action)
	assert.Equal(t, constants.ActionCreateOrg, entries[1].Action)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
