package people

import (
	"context"
	"testing"

	"minutebook-backend/internal/application/addresses"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPeopleService(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Address{},
		&domain.Person{},
		&domain.Org{},
		&domain.RoleAssignment{},
		&domain.AuditLog{},
	))

	org := &domain.Org{Name: "Acme Inc", Jurisdiction: "DE", CreatedBy: uuid.New()}
	require.NoError(t, db.Create(org).Error)

	return &Service{DB: db}, db, org.OrgID
}

func TestAddPerson_TwoRolesOneCall(t *testing.T) {
	s, db, orgID := setupPeopleService(t)
	actor := uuid.New()

	out, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, []RoleInput{
		{Role: constants.RoleDirector},
		{Role: constants.RoleShareholder},
	}, actor)
	require.NoError(t, err)
	assert.Len(t, out.Roles, 2)

	people, err := s.ListPeopleWithRoles(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, out.PersonID, people[0].PersonID)
	assert.Len(t, people[0].Roles, 2)

	var entries []domain.AuditLog
	require.NoError(t, db.Where("org_id = ? AND action = ?", orgID, constants.ActionAddPerson).Find(&entries).Error)
	assert.Len(t, entries, 1)
}

func TestAddPerson_InvalidRoleLeavesNothing(t *testing.T) {
	s, db, orgID := setupPeopleService(t)

	_, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, []RoleInput{
		{Role: constants.RoleDirector},
		{Role: "Janitor"},
	}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidRole)

	var personCount, roleCount, auditCount int64
	require.NoError(t, db.Model(&domain.Person{}).Count(&personCount).Error)
	require.NoError(t, db.Model(&domain.RoleAssignment{}).Count(&roleCount).Error)
	require.NoError(t, db.Model(&domain.AuditLog{}).Count(&auditCount).Error)
	assert.Zero(t, personCount)
	assert.Zero(t, roleCount)
	assert.Zero(t, auditCount)
}

func TestAddPerson_NoRoles(t *testing.T) {
	s, _, orgID := setupPeopleService(t)
	_, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, nil, uuid.New())
	assert.ErrorIs(t, err, ErrRolesRequired)
}

func TestAddPerson_OrgNotFound(t *testing.T) {
	s, _, _ := setupPeopleService(t)
	_, err := s.AddPerson(context.Background(), uuid.New(), PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, []RoleInput{{Role: constants.RoleOfficer}}, uuid.New())
	assert.ErrorIs(t, err, ErrOrgNotFound)
}

func TestAddPerson_WithAddress(t *testing.T) {
	s, db, orgID := setupPeopleService(t)

	out, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address: &addresses.Input{
			Line1: "12 Analytical Way", City: "London", Region: "LDN", Country: "GB", PostalCode: "EC1A 1BB",
		},
	}, []RoleInput{{Role: constants.RoleDirector}}, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, out.AddressID)

	var addr domain.Address
	require.NoError(t, db.Where("address_id = ?", *out.AddressID).First(&addr).Error)
	assert.Equal(t, "12 Analytical Way", addr.Line1)
}

func TestListPeopleWithRoles_ScopedToOrg(t *testing.T) {
	s, db, orgID := setupPeopleService(t)

	other := &domain.Org{Name: "Other Inc", Jurisdiction: "ON", CreatedBy: uuid.New()}
	require.NoError(t, db.Create(other).Error)

	out, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, []RoleInput{{Role: constants.RoleDirector}}, uuid.New())
	require.NoError(t, err)

	// Same person gets a role in the other org directly
	pid := out.PersonID
	require.NoError(t, db.Create(&domain.RoleAssignment{
		OrgID:     other.OrgID,
		PersonID:  &pid,
		Role:      constants.RoleOfficer,
		StartDate: out.Roles[0].StartDate,
	}).Error)

	people, err := s.ListPeopleWithRoles(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Len(t, people[0].Roles, 1)
	assert.Equal(t, constants.RoleDirector, people[0].Roles[0].Role)
}

func TestRemoveRole_KeepsPerson(t *testing.T) {
	s, db, orgID := setupPeopleService(t)
	actor := uuid.New()

	out, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, []RoleInput{{Role: constants.RoleDirector}}, actor)
	require.NoError(t, err)

	require.NoError(t, s.RemoveRole(context.Background(), orgID, out.Roles[0].RoleID, actor))

	var roleCount int64
	require.NoError(t, db.Model(&domain.RoleAssignment{}).Count(&roleCount).Error)
	assert.Zero(t, roleCount)

	var person domain.Person
	assert.NoError(t, db.Where("person_id = ?", out.PersonID).First(&person).Error)
}

func TestUpdatePerson_PatchAndAudit(t *testing.T) {
	s, db, orgID := setupPeopleService(t)
	actor := uuid.New()

	out, err := s.AddPerson(context.Background(), orgID, PersonInput{
		FirstName: "Ada", LastName: "Lovelace",
	}, []RoleInput{{Role: constants.RoleDirector}}, actor)
	require.NoError(t, err)

	email := "ada@example.com"
	person, err := s.UpdatePerson(context.Background(), orgID, out.PersonID, UpdatePersonInput{Email: &email}, actor)
	require.NoError(t, err)
	require.NotNil(t, person.Email)
	assert.Equal(t, email, *person.Email)

	var entries []domain.AuditLog
	require.NoError(t, db.Where("action = ?", constants.ActionUpdatePerson).Find(&entries).Error)
	assert.Len(t, entries, 1)
}
