package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareClass defines a class of equity scoped to one Org. ShortCode is
// unique within the org (enforced in the cap table service and by the
// composite index).
type ShareClass struct {
	ShareClassID  uuid.UUID `gorm:"column:share_class_id;type:uuid;primaryKey" json:"share_class_id"`
	OrgID         uuid.UUID `gorm:"column:org_id;type:uuid;not null;uniqueIndex:idx_class_org_code" json:"org_id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ShortCode     string    `gorm:"column:short_code;type:varchar(10);not null;uniqueIndex:idx_class_org_code" json:"short_code"`
	Voting        bool      `gorm:"column:voting;not null" json:"voting"`
	Participating bool      `gorm:"column:participating;not null" json:"participating"`
	Redemption    bool      `gorm:"column:redemption;not null" json:"redemption"`
	SpecialRights *string   `gorm:"column:special_rights" json:"special_rights"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (ShareClass) TableName() string {
	return "ShareClasses"
}

func (sc *ShareClass) BeforeCreate(tx *gorm.DB) error {
	if sc.ShareClassID == uuid.Nil {
		sc.ShareClassID = uuid.New()
	}
	return nil
}
