package dto

// CreateCompanyRequest creates a company
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required" example:"Petronas Digital Sdn Bhd"`
	Address string `json:"address"`
	State   string `json:"state" example:"Kuala Lumpur"`
}

// UpdateCompanyRequest carries a partial company update
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	State   *string `json:"state"`
}
