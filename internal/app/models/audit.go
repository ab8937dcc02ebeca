package models

import "time"

// AuditEntry is one append-only row in the 'audit_logs' table. Entries are
// write-once: nothing updates or deletes them short of a full reset.
type AuditEntry struct {
	ID           int64     `json:"id" db:"id"`
	MatrixNumber string    `json:"matrixNumber" db:"matrix_number"`
	FieldChanged string    `json:"fieldChanged" db:"field_changed"`
	OldValue     string    `json:"oldValue" db:"old_value"`
	NewValue     string    `json:"newValue" db:"new_value"`
	ChangedBy    string    `json:"changedBy" db:"changed_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
