package captable

import (
	"context"
	"strings"
	"time"

	"minutebook-backend/internal/application/audit"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the conservation-of-shares ledger: share classes, issuances,
// transfers and the aggregated cap table view. ShareIssuance and
// ShareTransfer rows are written only here.
type Service struct {
	DB *gorm.DB
}

// ShareClassInput is the payload for CreateShareClass.
type ShareClassInput struct {
	Name          string  `json:"name"`
	ShortCode     string  `json:"short_code"`
	Voting        bool    `json:"voting"`
	Participating bool    `json:"participating"`
	Redemption    bool    `json:"redemption"`
	SpecialRights *string `json:"special_rights"`
}

// CreateShareClass validates short-code uniqueness within the org and
// audits CREATE_SHARE_CLASS in the same transaction.
func (s *Service) CreateShareClass(ctx context.Context, orgID uuid.UUID, in ShareClassInput, actorID uuid.UUID) (*domain.ShareClass, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.ShortCode) == "" {
		return nil, ErrNameShortCodeRequired
	}

	class := &domain.ShareClass{
		OrgID:         orgID,
		Name:          strings.TrimSpace(in.Name),
		ShortCode:     strings.ToUpper(strings.TrimSpace(in.ShortCode)),
		Voting:        in.Voting,
		Participating: in.Participating,
		Redemption:    in.Redemption,
		SpecialRights: in.SpecialRights,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org domain.Org
		if err := tx.Where("org_id = ?", orgID).First(&org).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrgNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&domain.ShareClass{}).
			Where("org_id = ? AND short_code = ?", orgID, class.ShortCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateShortCode
		}

		if err := tx.Create(class).Error; err != nil {
			return err
		}
		return audit.Record(tx, &orgID, actorID, constants.ActionCreateShareClass, map[string]interface{}{
			"share_class_id": class.ShareClassID.String(),
			"short_code":     class.ShortCode,
		})
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

// IssueSharesInput is the payload for IssueShares. ShareholderType selects
// which of the two id fields must be set.
type IssueSharesInput struct {
	ShareholderType     string           `json:"shareholder_type"`
	ShareholderID       *uuid.UUID       `json:"shareholder_id"`
	EntityShareholderID *uuid.UUID       `json:"entity_shareholder_id"`
	ShareClassID        uuid.UUID        `json:"share_class_id"`
	Quantity            int64            `json:"quantity"`
	CertNumber          string           `json:"cert_number"`
	IssuePrice          *decimal.Decimal `json:"issue_price"`
	IssueDate           *time.Time       `json:"issue_date"`
}

// IssueShares enforces shareholder-type exclusivity, rejects
// self-shareholding, checks the class belongs to the org and the cert
// number is unused within (org, class), then persists the issuance plus
// its ISSUE_SHARES audit row in one transaction.
func (s *Service) IssueShares(ctx context.Context, orgID uuid.UUID, in IssueSharesInput, actorID uuid.UUID) (*domain.ShareIssuance, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	switch in.ShareholderType {
	case domain.ShareholderPerson:
		if in.ShareholderID == nil || in.EntityShareholderID != nil {
			return nil, ErrShareholderExclusive
		}
	case domain.ShareholderEntity:
		if in.EntityShareholderID == nil || in.ShareholderID != nil {
			return nil, ErrShareholderExclusive
		}
		if *in.EntityShareholderID == orgID {
			return nil, ErrSelfShareholding
		}
	default:
		return nil, ErrShareholderExclusive
	}
	if in.Quantity <= 0 {
		return nil, ErrQuantityPositive
	}
	if strings.TrimSpace(in.CertNumber) == "" {
		return nil, ErrCertNumberRequired
	}
	if in.IssuePrice != nil && in.IssuePrice.IsNegative() {
		return nil, ErrNegativeIssuePrice
	}

	issueDate := time.Now().UTC()
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}
	issuance := &domain.ShareIssuance{
		OrgID:               orgID,
		ShareholderType:     in.ShareholderType,
		ShareholderID:       in.ShareholderID,
		EntityShareholderID: in.EntityShareholderID,
		ShareClassID:        in.ShareClassID,
		Quantity:            in.Quantity,
		CertNumber:          strings.TrimSpace(in.CertNumber),
		IssuePrice:          in.IssuePrice,
		IssueDate:           issueDate,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.classInOrg(tx, orgID, in.ShareClassID); err != nil {
			return err
		}

		if in.ShareholderType == domain.ShareholderPerson {
			var person domain.Person
			if err := tx.Where("person_id = ?", *in.ShareholderID).First(&person).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrHolderNotFound
				}
				return err
			}
		} else {
			var holder domain.Org
			if err := tx.Where("org_id = ?", *in.EntityShareholderID).First(&holder).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrHolderNotFound
				}
				return err
			}
		}

		// Cert numbers are scoped to (org, class); reuse elsewhere is fine.
		var count int64
		if err := tx.Model(&domain.ShareIssuance{}).
			Where("org_id = ? AND share_class_id = ? AND cert_number = ?", orgID, in.ShareClassID, issuance.CertNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCertNumber
		}

		if err := tx.Create(issuance).Error; err != nil {
			return err
		}
		return audit.Record(tx, &orgID, actorID, constants.ActionIssueShares, map[string]interface{}{
			"issuance_id": issuance.IssuanceID.String(),
			"quantity":    issuance.Quantity,
			"cert_number": issuance.CertNumber,
		})
	})
	if err != nil {
		return nil, err
	}
	return issuance, nil
}

// TransferSharesInput is the payload for TransferShares. A nil FromPersonID
// records a treasury movement.
type TransferSharesInput struct {
	FromPersonID  *uuid.UUID       `json:"from_person_id"`
	ToPersonID    uuid.UUID        `json:"to_person_id"`
	ShareClassID  uuid.UUID        `json:"share_class_id"`
	Quantity      int64            `json:"quantity"`
	TransferDate  *time.Time       `json:"transfer_date"`
	Consideration *decimal.Decimal `json:"consideration"`
	CertFrom      *string          `json:"cert_from"`
	CertTo        *string          `json:"cert_to"`
}

// TransferShares checks the class belongs to the org and, when a from
// holder is named, that their net balance in the class covers the
// quantity. The balance check and the insert run inside one transaction so
// concurrent transfers cannot overdraw a holder.
func (s *Service) TransferShares(ctx context.Context, orgID uuid.UUID, in TransferSharesInput, actorID uuid.UUID) (*domain.ShareTransfer, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if in.ToPersonID == uuid.Nil {
		return nil, ErrToPersonRequired
	}
	if in.Quantity <= 0 {
		return nil, ErrQuantityPositive
	}

	transferDate := time.Now().UTC()
	if in.TransferDate != nil {
		transferDate = *in.TransferDate
	}
	transfer := &domain.ShareTransfer{
		OrgID:         orgID,
		FromPersonID:  in.FromPersonID,
		ToPersonID:    in.ToPersonID,
		ShareClassID:  in.ShareClassID,
		Quantity:      in.Quantity,
		TransferDate:  transferDate,
		Consideration: in.Consideration,
		CertFrom:      in.CertFrom,
		CertTo:        in.CertTo,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.classInOrg(tx, orgID, in.ShareClassID); err != nil {
			return err
		}

		var toPerson domain.Person
		if err := tx.Where("person_id = ?", in.ToPersonID).First(&toPerson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrHolderNotFound
			}
			return err
		}

		if in.FromPersonID != nil {
			balance, err := personBalance(tx, orgID, in.ShareClassID, *in.FromPersonID)
			if err != nil {
				return err
			}
			if balance < in.Quantity {
				return ErrInsufficientShares
			}
		}

		if err := tx.Create(transfer).Error; err != nil {
			return err
		}
		payload := map[string]interface{}{
			"transfer_id":  transfer.TransferID.String(),
			"to_person_id": transfer.ToPersonID.String(),
			"quantity":     transfer.Quantity,
		}
		if transfer.FromPersonID != nil {
			payload["from_person_id"] = transfer.FromPersonID.String()
		}
		return audit.Record(tx, &orgID, actorID, constants.ActionTransferShares, payload)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// classInOrg verifies the share class exists and belongs to the org.
func (s *Service) classInOrg(tx *gorm.DB, orgID, classID uuid.UUID) error {
	var class domain.ShareClass
	if err := tx.Where("share_class_id = ?", classID).First(&class).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrClassNotFound
		}
		return err
	}
	if class.OrgID != orgID {
		return ErrClassWrongOrg
	}
	return nil
}

// personBalance computes a person's net holding in one class:
// issuances in, minus transfers out, plus transfers in.
func personBalance(tx *gorm.DB, orgID, classID, personID uuid.UUID) (int64, error) {
	type sumRow struct{ Total int64 }

	var issued sumRow
	if err := tx.Model(&domain.ShareIssuance{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("org_id = ? AND share_class_id = ? AND shareholder_type = ? AND shareholder_id = ?",
			orgID, classID, domain.ShareholderPerson, personID).
		Scan(&issued).Error; err != nil {
		return 0, err
	}

	var out sumRow
	if err := tx.Model(&domain.ShareTransfer{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("org_id = ? AND share_class_id = ? AND from_person_id = ?", orgID, classID, personID).
		Scan(&out).Error; err != nil {
		return 0, err
	}

	var in sumRow
	if err := tx.Model(&domain.ShareTransfer{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("org_id = ? AND share_class_id = ? AND to_person_id = ?", orgID, classID, personID).
		Scan(&in).Error; err != nil {
		return 0, err
	}

	return issued.Total - out.Total + in.Total, nil
}

// Holding is one holder's net position in one class. PercentOfClass is the
// holder's share of the class; PercentOfTotal is their share of every
// outstanding share across all classes. Both views are exposed, never
// conflated.
type Holding struct {
	ShareholderType     string     `json:"shareholder_type"`
	ShareholderID       *uuid.UUID `json:"shareholder_id"`
	EntityShareholderID *uuid.UUID `json:"entity_shareholder_id"`
	Quantity            int64      `json:"quantity"`
	PercentOfClass      float64    `json:"percent_of_class"`
	PercentOfTotal      float64    `json:"percent_of_total"`
}

// ClassHoldings groups holdings under their share class.
type ClassHoldings struct {
	ShareClass domain.ShareClass `json:"share_class"`
	Total      int64             `json:"total"`
	Holdings   []Holding         `json:"holdings"`
}

// CapTable is the aggregated ownership view for one org.
type CapTable struct {
	OrgID   uuid.UUID       `json:"org_id"`
	Total   int64           `json:"total"`
	Classes []ClassHoldings `json:"classes"`
}

type holderKey struct {
	typ string
	id  uuid.UUID
}

// ComputeCapTable aggregates net holdings per (class, holder) from
// issuances adjusted by transfers, in application code. Transfers only
// move shares between person holders; entity positions change through
// issuances alone.
func (s *Service) ComputeCapTable(ctx context.Context, orgID uuid.UUID) (*CapTable, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}

	var classes []domain.ShareClass
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	var issuances []domain.ShareIssuance
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).Find(&issuances).Error; err != nil {
		return nil, err
	}
	var transfers []domain.ShareTransfer
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).Find(&transfers).Error; err != nil {
		return nil, err
	}

	// net[classID][holder] = quantity
	net := map[uuid.UUID]map[holderKey]int64{}
	add := func(classID uuid.UUID, key holderKey, qty int64) {
		if net[classID] == nil {
			net[classID] = map[holderKey]int64{}
		}
		net[classID][key] += qty
	}
	for _, iss := range issuances {
		switch iss.ShareholderType {
		case domain.ShareholderPerson:
			add(iss.ShareClassID, holderKey{domain.ShareholderPerson, *iss.ShareholderID}, iss.Quantity)
		case domain.ShareholderEntity:
			add(iss.ShareClassID, holderKey{domain.ShareholderEntity, *iss.EntityShareholderID}, iss.Quantity)
		}
	}
	for _, tr := range transfers {
		if tr.FromPersonID != nil {
			add(tr.ShareClassID, holderKey{domain.ShareholderPerson, *tr.FromPersonID}, -tr.Quantity)
		}
		add(tr.ShareClassID, holderKey{domain.ShareholderPerson, tr.ToPersonID}, tr.Quantity)
	}

	table := &CapTable{OrgID: orgID, Classes: make([]ClassHoldings, 0, len(classes))}
	for _, class := range classes {
		classTotal := int64(0)
		for _, qty := range net[class.ShareClassID] {
			if qty > 0 {
				classTotal += qty
			}
		}
		table.Total += classTotal
	}

	for _, class := range classes {
		ch := ClassHoldings{ShareClass: class, Holdings: []Holding{}}
		for key, qty := range net[class.ShareClassID] {
			if qty <= 0 {
				continue
			}
			ch.Total += qty
			h := Holding{
				ShareholderType: key.typ,
				Quantity:        qty,
			}
			id := key.id
			if key.typ == domain.ShareholderPerson {
				h.ShareholderID = &id
			} else {
				h.EntityShareholderID = &id
			}
			ch.Holdings = append(ch.Holdings, h)
		}
		for i := range ch.Holdings {
			if ch.Total > 0 {
				ch.Holdings[i].PercentOfClass = float64(ch.Holdings[i].Quantity) / float64(ch.Total) * 100
			}
			if table.Total > 0 {
				ch.Holdings[i].PercentOfTotal = float64(ch.Holdings[i].Quantity) / float64(table.Total) * 100
			}
		}
		table.Classes = append(table.Classes, ch)
	}
	return table, nil
}

// ListShareClasses returns an org's share classes, oldest first.
func (s *Service) ListShareClasses(ctx context.Context, orgID uuid.UUID) ([]domain.ShareClass, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	var classes []domain.ShareClass
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}
