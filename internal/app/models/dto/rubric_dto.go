package dto

// UpsertRubricRequest creates or updates a rubric's metadata; the file
// itself travels as multipart form data next to these fields.
type UpsertRubricRequest struct {
	Subject  string `form:"subject" binding:"required,oneof=FYP1 FYP2 LI"`
	Cohort   string `form:"cohort" binding:"required" example:"2023/2024"`
	ItemName string `form:"itemName" binding:"required" example:"Proposal Defense Rubric"`
}

// RubricData is a rubric row with a resolved download URL
type RubricData struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	Cohort   string `json:"cohort"`
	ItemName string `json:"itemName"`
	FileURL  string `json:"fileUrl,omitempty"`
}

// ImportReport summarises a bulk import run
type ImportReport struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}
