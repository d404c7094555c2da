package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMeta captures identifiers and audit fields shared across entities.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// JSONMap persists arbitrary metadata fields as JSON.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value any) error {
	if m == nil {
		return errors.New("JSONMap: Scan on nil pointer")
	}
	return scanJSON("JSONMap", value, m, func() { *m = nil })
}

// ParamList stores ordered template params as a JSON array.
type ParamList []any

// Value implements driver.Valuer.
func (p ParamList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]any(p))
}

// Scan implements sql.Scanner.
func (p *ParamList) Scan(value any) error {
	if p == nil {
		return errors.New("ParamList: Scan on nil pointer")
	}
	return scanJSON("ParamList", value, (*[]any)(p), func() { *p = nil })
}

func scanJSON(name string, value any, dst any, reset func()) error {
	switch v := value.(type) {
	case nil:
		reset()
		return nil
	case []byte:
		if len(v) == 0 {
			reset()
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			reset()
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: unsupported type %T", name, value)
	}
}

// ActivityRecord is the persisted, rendered form of a published activity
// event as shown in a user's feed.
type ActivityRecord struct {
	bun.BaseModel `bun:"table:activity_records"`
	RecordMeta

	App           string    `bun:",nullzero,notnull" json:"app"`
	Type          string    `bun:",nullzero,notnull" json:"type"`
	AffectedUser  string    `bun:",nullzero,notnull" json:"affected_user"`
	Author        string    `bun:",nullzero" json:"author,omitempty"`
	Subject       string    `bun:",nullzero" json:"subject"`
	SubjectParams ParamList `bun:"type:jsonb,nullzero" json:"subject_params,omitempty"`
	Message       string    `bun:",nullzero" json:"message,omitempty"`
	MessageParams ParamList `bun:"type:jsonb,nullzero" json:"message_params,omitempty"`
	Rendered      string    `bun:",nullzero" json:"rendered"`
	RenderedBody  string    `bun:",nullzero" json:"rendered_body,omitempty"`
	Locale        string    `bun:",nullzero" json:"locale,omitempty"`
	ObjectType    string    `bun:",nullzero" json:"object_type,omitempty"`
	ObjectID      string    `bun:",nullzero" json:"object_id,omitempty"`
	ObjectName    string    `bun:",nullzero" json:"object_name,omitempty"`
	Link          string    `bun:",nullzero" json:"link,omitempty"`
	Priority      int       `bun:",notnull,default:0" json:"priority"`
	Metadata      JSONMap   `bun:"type:jsonb,nullzero" json:"metadata,omitempty"`
	OccurredAt    time.Time `bun:",nullzero,notnull" json:"occurred_at"`
}
