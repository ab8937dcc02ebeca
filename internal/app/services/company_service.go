package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
)

// CompanyService handles company directory operations
type CompanyService struct {
	companyRepo *repositories.CompanyRepository
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companyRepo *repositories.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompany adds a company to the directory
func (s *CompanyService) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidationFailed)
	}

	company := &models.Company{
		Name:    name,
		Address: strings.TrimSpace(req.Address),
		State:   strings.TrimSpace(req.State),
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// ListCompanies retrieves companies with optional filters and pagination
func (s *CompanyService) ListCompanies(ctx context.Context, search, state string, page, pageSize int) ([]*models.Company, int64, error) {
	return s.companyRepo.GetAll(ctx, search, state, page, pageSize)
}

// UpdateCompany applies a partial company update
func (s *CompanyService) UpdateCompany(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidationFailed)
		}
		company.Name = name
	}
	if req.Address != nil {
		company.Address = strings.TrimSpace(*req.Address)
	}
	if req.State != nil {
		company.State = strings.TrimSpace(*req.State)
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes a company. Assignment columns referencing it are
// nulled by the schema.
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) error {
	return s.companyRepo.Delete(ctx, id)
}
