package dto

// CreateStudentRequest creates a student with optional initial assignments.
// Omitted assignment fields stay unset and may later be filled by sync.
type CreateStudentRequest struct {
	Name         string `json:"name" binding:"required" example:"Aina Zulaikha"`
	MatrixNumber string `json:"matrixNumber" binding:"required" example:"AM2110012345"`
	Email        string `json:"email" binding:"omitempty,email"`
	Program      string `json:"program"`
	Cohort       string `json:"cohort" example:"2023/2024"`
	FYPTitle     string `json:"fypTitle"`
	// Password defaults to the matrix number when omitted (hashed either way)
	Password string `json:"password"`

	FYP1CompanyID  *int64 `json:"fyp1CompanyId"`
	LICompanyID    *int64 `json:"liCompanyId"`
	FYP1SVID       *int64 `json:"fyp1SvId"`
	FYP2SVID       *int64 `json:"fyp2SvId"`
	LIUniSVID      *int64 `json:"liUniSvId"`
	LIIndustrySVID *int64 `json:"liIndustrySvId"`
	FYP1PanelID    *int64 `json:"fyp1PanelId"`
	FYP2PanelID    *int64 `json:"fyp2PanelId"`
}

// UpdateStudentRequest carries a partial profile update; nil fields are
// left unchanged.
type UpdateStudentRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Program  *string `json:"program"`
	Cohort   *string `json:"cohort"`
	FYPTitle *string `json:"fypTitle"`
}

// SetAssignmentFieldRequest sets one human-named assignment field
type SetAssignmentFieldRequest struct {
	Field string `json:"field" binding:"required" example:"FYP 1 SV"`
	// Value is coerced by the field's declared kind; null clears the field
	Value *string `json:"value"`
}

// CohortRequest names a cohort for archive/unarchive operations
type CohortRequest struct {
	Cohort string `json:"cohort" binding:"required" example:"2023/2024"`
}

// SyncSelectionRequest names the students to run assignment sync over
type SyncSelectionRequest struct {
	MatrixNumbers []string `json:"matrixNumbers" binding:"required,min=1"`
}

// SyncResult reports the outcome of one student's sync
type SyncResult struct {
	MatrixNumber  string `json:"matrixNumber"`
	FieldsChanged int    `json:"fieldsChanged"`
	Error         string `json:"error,omitempty"`
}

// StudentData is the dashboard projection of a student row with resolved
// reference names and derived status
type StudentData struct {
	ID           int64  `json:"id"`
	MatrixNumber string `json:"matrixNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Program      string `json:"program"`
	Cohort       string `json:"cohort"`
	FYPTitle     string `json:"fypTitle"`
	Status       string `json:"status"`
	IsArchived   bool   `json:"isArchived"`

	LaporDiriSubmitted bool `json:"laporDiriSubmitted"`
	AkuJanjiSubmitted  bool `json:"akuJanjiSubmitted"`

	FYP1Company  string `json:"fyp1Company,omitempty"`
	LICompany    string `json:"liCompany,omitempty"`
	FYP1State    string `json:"fyp1State,omitempty"`
	LIState      string `json:"liState,omitempty"`
	FYP1SV       string `json:"fyp1Sv,omitempty"`
	FYP2SV       string `json:"fyp2Sv,omitempty"`
	LIUniSV      string `json:"liUniSv,omitempty"`
	LIIndustrySV string `json:"liIndustrySv,omitempty"`
	FYP1Panel    string `json:"fyp1Panel,omitempty"`
	FYP2Panel    string `json:"fyp2Panel,omitempty"`

	FYP1Marks *float64 `json:"fyp1Marks"`
	FYP2Marks *float64 `json:"fyp2Marks"`
	LIMarks   *float64 `json:"liMarks"`
}

// DashboardSummary aggregates the metric tiles over the current filter set
type DashboardSummary struct {
	TotalStudents  int `json:"totalStudents"`
	TotalCompanies int `json:"totalCompanies"`
	DocsPending    int `json:"docsPending"`
	GradingPending int `json:"gradingPending"`
}
