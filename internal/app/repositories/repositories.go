package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	StaffRepository   *StaffRepository
	CompanyRepository *CompanyRepository
	RubricRepository  *RubricRepository
	AuditRepository   *AuditRepository
	TokenRepository   *TokenRepository
	SystemRepository  *SystemRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		StaffRepository:   NewStaffRepository(db),
		CompanyRepository: NewCompanyRepository(db),
		RubricRepository:  NewRubricRepository(db),
		AuditRepository:   NewAuditRepository(db),
		TokenRepository:   NewTokenRepository(db),
		SystemRepository:  NewSystemRepository(db),
	}
}
