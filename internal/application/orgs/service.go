package orgs

import (
	"context"
	"strings"
	"time"

	"minutebook-backend/internal/application/addresses"
	"minutebook-backend/internal/application/audit"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service encapsulates organization operations.
type Service struct {
	DB *gorm.DB
}

// CreateOrgInput carries the org scalars plus up to four embedded address
// payloads, each materialized as a new Address row before the org itself.
type CreateOrgInput struct {
	Name               string     `json:"name"`
	Jurisdiction       string     `json:"jurisdiction"`
	RegistrationNumber *string    `json:"registration_number"`
	FormationDate      *time.Time `json:"formation_date"`

	RegisteredOffice      *addresses.Input `json:"registered_office"`
	RecordsOffice         *addresses.Input `json:"records_office"`
	MailingAddress        *addresses.Input `json:"mailing_address"`
	RepresentativeAddress *addresses.Input `json:"representative_address"`

	RepresentativeName  *string `json:"representative_name"`
	RepresentativeEmail *string `json:"representative_email"`
	RepresentativePhone *string `json:"representative_phone"`
}

// CreateOrg validates, persists addresses then the org, and writes the
// CREATE_ORG audit entry — all in one transaction.
func (s *Service) CreateOrg(ctx context.Context, in CreateOrgInput, actorID uuid.UUID) (*domain.Org, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Jurisdiction) == "" {
		return nil, ErrNameJurisdictionRequired
	}

	org := &domain.Org{
		Name:                strings.TrimSpace(in.Name),
		Jurisdiction:        strings.TrimSpace(in.Jurisdiction),
		RegistrationNumber:  in.RegistrationNumber,
		FormationDate:       in.FormationDate,
		RepresentativeName:  in.RepresentativeName,
		RepresentativeEmail: in.RepresentativeEmail,
		RepresentativePhone: in.RepresentativePhone,
		CreatedBy:           actorID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := []struct {
			in   *addresses.Input
			dest **uuid.UUID
		}{
			{in.RegisteredOffice, &org.RegisteredOfficeAddressID},
			{in.RecordsOffice, &org.RecordsOfficeAddressID},
			{in.MailingAddress, &org.MailingAddressID},
			{in.RepresentativeAddress, &org.RepresentativeAddressID},
		}
		for _, slot := range slots {
			if slot.in == nil {
				continue
			}
			addr, err := addresses.Create(tx, slot.in)
			if err != nil {
				return err
			}
			id := addr.AddressID
			*slot.dest = &id
		}

		if err := tx.Create(org).Error; err != nil {
			return err
		}

		return audit.Record(tx, &org.OrgID, actorID, constants.ActionCreateOrg, map[string]interface{}{
			"org_id": org.OrgID.String(),
			"name":   org.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// UpdateOrgInput carries partial scalar updates plus optional address
// payloads; each address present becomes a new row and the FK is repointed.
type UpdateOrgInput struct {
	Name               *string    `json:"name"`
	Jurisdiction       *string    `json:"jurisdiction"`
	RegistrationNumber *string    `json:"registration_number"`
	FormationDate      *time.Time `json:"formation_date"`

	RegisteredOffice      *addresses.Input `json:"registered_office"`
	RecordsOffice         *addresses.Input `json:"records_office"`
	MailingAddress        *addresses.Input `json:"mailing_address"`
	RepresentativeAddress *addresses.Input `json:"representative_address"`

	RepresentativeName  *string `json:"representative_name"`
	RepresentativeEmail *string `json:"representative_email"`
	RepresentativePhone *string `json:"representative_phone"`
}

// UpdateOrg merges scalar fields, materializes new Address rows for any
// address payloads present, bumps updated_at, and writes UPDATE_ORG with
// the changed-field names — one transaction.
func (s *Service) UpdateOrg(ctx context.Context, orgID uuid.UUID, in UpdateOrgInput, actorID uuid.UUID) (*domain.Org, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}

	var org domain.Org
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ?", orgID).First(&org).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrgNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		changed := []string{}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			updates["name"] = strings.TrimSpace(*in.Name)
			changed = append(changed, "name")
		}
		if in.Jurisdiction != nil && strings.TrimSpace(*in.Jurisdiction) != "" {
			updates["jurisdiction"] = strings.TrimSpace(*in.Jurisdiction)
			changed = append(changed, "jurisdiction")
		}
		if in.RegistrationNumber != nil {
			updates["registration_number"] = *in.RegistrationNumber
			changed = append(changed, "registration_number")
		}
		if in.FormationDate != nil {
			updates["formation_date"] = *in.FormationDate
			changed = append(changed, "formation_date")
		}
		if in.RepresentativeName != nil {
			updates["representative_name"] = *in.RepresentativeName
			changed = append(changed, "representative_name")
		}
		if in.RepresentativeEmail != nil {
			updates["representative_email"] = *in.RepresentativeEmail
			changed = append(changed, "representative_email")
		}
		if in.RepresentativePhone != nil {
			updates["representative_phone"] = *in.RepresentativePhone
			changed = append(changed, "representative_phone")
		}

		slots := []struct {
			in     *addresses.Input
			column string
		}{
			{in.RegisteredOffice, "registered_office_address_id"},
			{in.RecordsOffice, "records_office_address_id"},
			{in.MailingAddress, "mailing_address_id"},
			{in.RepresentativeAddress, "representative_address_id"},
		}
		for _, slot := range slots {
			if slot.in == nil {
				continue
			}
			addr, err := addresses.Create(tx, slot.in)
			if err != nil {
				return err
			}
			updates[slot.column] = addr.AddressID
			changed = append(changed, slot.column)
		}

		if len(updates) == 0 {
			return ErrNoUpdateFields
		}
		updates["updated_at"] = time.Now().UTC()

		if err := tx.Model(&domain.Org{}).Where("org_id = ?", orgID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("org_id = ?", orgID).First(&org).Error; err != nil {
			return err
		}

		return audit.Record(tx, &orgID, actorID, constants.ActionUpdateOrg, map[string]interface{}{
			"org_id":  orgID.String(),
			"changed": changed,
		})
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetOrg returns the org row. Address references are not resolved here;
// use GetOrgAddresses as a follow-up join to avoid N+1 fetches on lists.
func (s *Service) GetOrg(ctx context.Context, orgID uuid.UUID) (*domain.Org, error) {
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
	return &org, nil
}

// OrgAddresses resolves the org's four address slots (nil where unset).
type OrgAddresses struct {
	RegisteredOffice      *domain.Address `json:"registered_office"`
	RecordsOffice         *domain.Address `json:"records_office"`
	MailingAddress        *domain.Address `json:"mailing_address"`
	RepresentativeAddress *domain.Address `json:"representative_address"`
}

// GetOrgAddresses fetches all referenced addresses in a single query and
// assigns them to their slots.
func (s *Service) GetOrgAddresses(ctx context.Context, orgID uuid.UUID) (*OrgAddresses, error) {
	org, err := s.GetOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{}
	for _, id := range []*uuid.UUID{
		org.RegisteredOfficeAddressID,
		org.RecordsOfficeAddressID,
		org.MailingAddressID,
		org.RepresentativeAddressID,
	} {
		if id != nil {
			ids = append(ids, *id)
		}
	}

	out := &OrgAddresses{}
	if len(ids) == 0 {
		return out, nil
	}

	var rows []domain.Address
	if err := s.DB.WithContext(ctx).Where("address_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Address, len(rows))
	for i := range rows {
		byID[rows[i].AddressID] = &rows[i]
	}
	if org.RegisteredOfficeAddressID != nil {
		out.RegisteredOffice = byID[*org.RegisteredOfficeAddressID]
	}
	if org.RecordsOfficeAddressID != nil {
		out.RecordsOffice = byID[*org.RecordsOfficeAddressID]
	}
	if org.MailingAddressID != nil {
		out.MailingAddress = byID[*org.MailingAddressID]
	}
	if org.RepresentativeAddressID != nil {
		out.RepresentativeAddress = byID[*org.RepresentativeAddressID]
	}
	return out, nil
}

// ListOrgs returns organizations created by a user, most recently updated
// first.
func (s *Service) ListOrgs(ctx context.Context, creatorID uuid.UUID) ([]domain.Org, error) {
	var orgsOut []domain.Org
	if err := s.DB.WithContext(ctx).
		Where("created_by = ?", creatorID).
		Order("updated_at DESC").
		Find(&orgsOut).Error; err != nil {
		return nil, err
	}
	return orgsOut, nil
}
