package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// SiteSettingsID is the fixed key of the singleton settings row.
const SiteSettingsID = "global"

// JSONB stores raw JSON in a postgres jsonb column.
type JSONB []byte

// Value implements driver.Valuer.
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// SiteSettings stores the shared template configuration governing all
// brokers' page structure and copy. There is exactly one row, keyed by
// SiteSettingsID; writes replace the stored config wholesale.
type SiteSettings struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	TemplateConfig JSONB     `gorm:"type:jsonb" json:"template_config"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
