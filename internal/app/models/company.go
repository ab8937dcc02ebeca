package models

// Company defines the company model based on the 'companies' table
type Company struct {
	ID      int64  `json:"id" db:"id" example:"22"`
	Name    string `json:"name" db:"name" example:"Petronas Digital Sdn Bhd"`
	Address string `json:"address" db:"address" example:"Tower 1, KLCC"`
	State   string `json:"state" db:"state" example:"Kuala Lumpur"`
}
