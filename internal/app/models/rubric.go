package models

import "time"

// Rubric defines a stored rubric document based on the 'rubrics' table.
// Rubrics are standalone reference material, not linked to students.
type Rubric struct {
	ID        int64     `json:"id" db:"id" example:"3"`
	Subject   Subject   `json:"subject" db:"subject" example:"FYP1"`
	Cohort    string    `json:"cohort" db:"cohort" example:"2023/2024"`
	ItemName  string    `json:"itemName" db:"item_name" example:"Proposal Defense Rubric"`
	FilePath  string    `json:"filePath" db:"file_path"` // object store path within the rubrics bucket
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
