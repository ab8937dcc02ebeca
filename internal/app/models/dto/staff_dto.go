package dto

// CreateStaffRequest creates a staff account
type CreateStaffRequest struct {
	Name          string `json:"name" binding:"required"`
	StaffIDNumber string `json:"staffIdNumber" binding:"required" example:"KP1234"`
	Email         string `json:"email" binding:"omitempty,email"`
	Department    string `json:"department"`
	Password      string `json:"password" binding:"required,min=8"`
}

// UpdateStaffRequest updates a staff member's profile fields
type UpdateStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Department string `json:"department"`
}

// VisibilityFilters narrows a staff member's visible student set and
// the admin student listing. All filters compose with AND after the
// role/subject mask is applied.
type VisibilityFilters struct {
	Subject    string `form:"subject" example:"FYP1"` // FYP1 | FYP2 | LI | ALL
	Role       string `form:"role" example:"ANY"`     // SUPERVISOR | PANEL | ANY
	Department string `form:"department"`             // exact match against program
	Search     string `form:"search"`                 // case-insensitive substring over name/matrix
	Program    string `form:"program"`
	Cohort     string `form:"cohort"`
	State      string `form:"state"`   // exact match against the FYP1/LI company state
	StaffID    int64  `form:"staffId"` // any masked assignment column references this staff member
}
