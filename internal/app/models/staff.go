package models

import "time"

// Staff defines the staff model based on the 'staff' table. Students
// reference staff rows by id from their supervisor/panel columns; the
// relation carries no ownership.
type Staff struct {
	ID            int64     `json:"id" db:"id" example:"7"`
	StaffIDNumber string    `json:"staffIdNumber" db:"staff_id_number" example:"KP1234"` // Unique business key
	Name          string    `json:"name" db:"name" example:"Dr. Farah Hanim"`
	Email         string    `json:"email" db:"email" example:"farah@uni.edu.my"`
	Department    string    `json:"department" db:"department" example:"Software Engineering"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Role          RoleType  `json:"role" db:"role" example:"STAFF"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
