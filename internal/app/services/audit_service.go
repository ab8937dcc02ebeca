package services

import (
	"context"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
)

// Audit listings are capped so the newest activity stays cheap to serve.
const auditListLimit = 100

// AuditService serves the read side of the audit trail
type AuditService struct {
	auditRepo *repositories.AuditRepository
}

// NewAuditService creates a new audit service instance
func NewAuditService(auditRepo *repositories.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// StudentHistory returns the newest audit entries for one student
func (s *AuditService) StudentHistory(ctx context.Context, matrixNumber string) ([]*models.AuditEntry, error) {
	return s.auditRepo.ListByMatrixNumber(ctx, matrixNumber, auditListLimit)
}

// RecentActivity returns the newest audit entries across all students
func (s *AuditService) RecentActivity(ctx context.Context) ([]*models.AuditEntry, error) {
	return s.auditRepo.ListRecent(ctx, auditListLimit)
}
