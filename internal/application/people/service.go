package people

import (
	"context"
	"strings"
	"time"

	"minutebook-backend/internal/application/addresses"
	"minutebook-backend/internal/application/audit"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"
	"minutebook-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service encapsulates people and role-assignment operations.
type Service struct {
	DB *gorm.DB
}

// PersonInput is the person payload for AddPerson.
type PersonInput struct {
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       *string          `json:"email"`
	DateOfBirth *time.Time       `json:"date_of_birth"`
	Address     *addresses.Input `json:"address"`
}

// RoleInput is one role granted alongside the person. StartDate defaults
// to now when absent.
type RoleInput struct {
	Role      string     `json:"role"`
	Title     *string    `json:"title"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PersonWithRoles is a person decorated with their role rows for one org.
type PersonWithRoles struct {
	domain.Person
	Roles []domain.RoleAssignment `json:"roles"`
}

// AddPerson creates the optional address, the person, and every role row,
// plus one ADD_PERSON audit entry — all in a single transaction, so a bad
// role leaves nothing behind.
func (s *Service) AddPerson(ctx context.Context, orgID uuid.UUID, in PersonInput, roles []RoleInput, actorID uuid.UUID) (*PersonWithRoles, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, ErrNameRequired
	}
	if len(roles) == 0 {
		return nil, ErrRolesRequired
	}
	if in.Email != nil && !validation.IsValidEmail(*in.Email) {
		return nil, ErrInvalidEmail
	}
	for _, r := range roles {
		if !constants.IsValidRole(r.Role) {
			return nil, ErrInvalidRole
		}
	}

	person := &domain.Person{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
	}
	out := &PersonWithRoles{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org domain.Org
		if err := tx.Where("org_id = ?", orgID).First(&org).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrgNotFound
			}
			return err
		}

		if in.Address != nil {
			addr, err := addresses.Create(tx, in.Address)
			if err != nil {
				return err
			}
			id := addr.AddressID
			person.AddressID = &id
		}
		if err := tx.Create(person).Error; err != nil {
			return err
		}

		roleNames := make([]string, 0, len(roles))
		rows := make([]domain.RoleAssignment, 0, len(roles))
		for _, r := range roles {
			start := time.Now().UTC()
			if r.StartDate != nil {
				start = *r.StartDate
			}
			pid := person.PersonID
			row := domain.RoleAssignment{
				OrgID:     orgID,
				PersonID:  &pid,
				Role:      r.Role,
				Title:     r.Title,
				StartDate: start,
				EndDate:   r.EndDate,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			rows = append(rows, row)
			roleNames = append(roleNames, r.Role)
		}

		out.Person = *person
		out.Roles = rows

		return audit.Record(tx, &orgID, actorID, constants.ActionAddPerson, map[string]interface{}{
			"person_id": person.PersonID.String(),
			"name":      person.FirstName + " " + person.LastName,
			"roles":     roleNames,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPeopleWithRoles joins people to their role rows scoped to the org.
// Each person appears once; roles held in other orgs are not included.
func (s *Service) ListPeopleWithRoles(ctx context.Context, orgID uuid.UUID) ([]PersonWithRoles, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}

	var roleRows []domain.RoleAssignment
	if err := s.DB.WithContext(ctx).
		Where("org_id = ? AND person_id IS NOT NULL", orgID).
		Order("created_at ASC").
		Find(&roleRows).Error; err != nil {
		return nil, err
	}
	if len(roleRows) == 0 {
		return []PersonWithRoles{}, nil
	}

	personIDs := make([]uuid.UUID, 0, len(roleRows))
	seen := map[uuid.UUID]bool{}
	for _, r := range roleRows {
		if r.PersonID != nil && !seen[*r.PersonID] {
			seen[*r.PersonID] = true
			personIDs = append(personIDs, *r.PersonID)
		}
	}

	var persons []domain.Person
	if err := s.DB.WithContext(ctx).Where("person_id IN ?", personIDs).Find(&persons).Error; err != nil {
		return nil, err
	}

	rolesByPerson := map[uuid.UUID][]domain.RoleAssignment{}
	for _, r := range roleRows {
		rolesByPerson[*r.PersonID] = append(rolesByPerson[*r.PersonID], r)
	}

	out := make([]PersonWithRoles, 0, len(persons))
	byID := map[uuid.UUID]domain.Person{}
	for _, p := range persons {
		byID[p.PersonID] = p
	}
	// Preserve first-role-row order for stable listings
	for _, id := range personIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, PersonWithRoles{Person: p, Roles: rolesByPerson[id]})
	}
	return out, nil
}

// UpdatePersonInput carries partial person updates. An address payload
// creates a new Address row and repoints the person's reference.
type UpdatePersonInput struct {
	FirstName   *string          `json:"first_name"`
	LastName    *string          `json:"last_name"`
	Email       *string          `json:"email"`
	DateOfBirth *time.Time       `json:"date_of_birth"`
	Address     *addresses.Input `json:"address"`
}

// UpdatePerson patches person fields and audits UPDATE_PERSON. orgID keys
// the audit entry; the person row itself is org-independent.
func (s *Service) UpdatePerson(ctx context.Context, orgID, personID uuid.UUID, in UpdatePersonInput, actorID uuid.UUID) (*domain.Person, error) {
	if personID == uuid.Nil {
		return nil, ErrPersonNotFound
	}
	if in.Email != nil && !validation.IsValidEmail(*in.Email) {
		return nil, ErrInvalidEmail
	}

	var person domain.Person
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", personID).First(&person).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPersonNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		changed := []string{}
		if in.FirstName != nil && strings.TrimSpace(*in.FirstName) != "" {
			updates["first_name"] = strings.TrimSpace(*in.FirstName)
			changed = append(changed, "first_name")
		}
		if in.LastName != nil && strings.TrimSpace(*in.LastName) != "" {
			updates["last_name"] = strings.TrimSpace(*in.LastName)
			changed = append(changed, "last_name")
		}
		if in.Email != nil {
			updates["email"] = *in.Email
			changed = append(changed, "email")
		}
		if in.DateOfBirth != nil {
			updates["date_of_birth"] = *in.DateOfBirth
			changed = append(changed, "date_of_birth")
		}
		if in.Address != nil {
			addr, err := addresses.Create(tx, in.Address)
			if err != nil {
				return err
			}
			updates["address_id"] = addr.AddressID
			changed = append(changed, "address_id")
		}
		if len(updates) == 0 {
			return ErrNoUpdateFields
		}

		if err := tx.Model(&domain.Person{}).Where("person_id = ?", personID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", personID).First(&person).Error; err != nil {
			return err
		}

		var auditOrg *uuid.UUID
		if orgID != uuid.Nil {
			auditOrg = &orgID
		}
		return audit.Record(tx, auditOrg, actorID, constants.ActionUpdatePerson, map[string]interface{}{
			"person_id": personID.String(),
			"changed":   changed,
		})
	})
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// RemoveRole deletes one role assignment row. The underlying person is
// never deleted.
func (s *Service) RemoveRole(ctx context.Context, orgID, roleID uuid.UUID, actorID uuid.UUID) error {
	if orgID == uuid.Nil {
		return ErrMissingOrgID
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.RoleAssignment
		if err := tx.Where("role_id = ? AND org_id = ?", roleID, orgID).First(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoleNotFound
			}
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		payload := map[string]interface{}{
			"role_id": roleID.String(),
			"role":    row.Role,
		}
		if row.PersonID != nil {
			payload["person_id"] = row.PersonID.String()
		}
		return audit.Record(tx, &orgID, actorID, constants.ActionRemoveRole, payload)
	})
}
