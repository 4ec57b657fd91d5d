package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record is the identity and audit columns of an editable row.
type Record struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewRecord assigns a fresh id stamped at now.
func NewRecord(now time.Time) Record {
	return Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch marks the row as modified at now.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// SoftDeleteRecord is a Record whose row is hidden by deleted_at instead of
// being removed.
type SoftDeleteRecord struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (r *SoftDeleteRecord) IsDeleted() bool {
	return r.DeletedAt != nil
}

// CreatedRecord is a row that is written once and never updated.
type CreatedRecord struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewCreatedRecord(now time.Time) CreatedRecord {
	return CreatedRecord{ID: uuid.New(), CreatedAt: now}
}
