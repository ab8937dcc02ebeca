package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/objectstore"
)

// RubricService manages rubric documents and the built-in assessment
// templates. Uploaded files live in the object store; the database row
// carries the path.
type RubricService struct {
	rubricRepo *repositories.RubricRepository
	storage    objectstore.Store
	bucket     string
}

// NewRubricService creates a new rubric service instance
func NewRubricService(rubricRepo *repositories.RubricRepository, storage objectstore.Store, bucket string) *RubricService {
	return &RubricService{
		rubricRepo: rubricRepo,
		storage:    storage,
		bucket:     bucket,
	}
}

// UpsertRubric stores a rubric file and creates or replaces the database
// row keyed by (subject, cohort, item name).
func (s *RubricService) UpsertRubric(ctx context.Context, req *dto.UpsertRubricRequest, filename string, data []byte, contentType string) (*models.Rubric, error) {
	subject := models.Subject(strings.ToUpper(strings.TrimSpace(req.Subject)))
	if !models.ValidSubject(subject) {
		return nil, fmt.Errorf("%w: invalid subject", apperrors.ErrValidationFailed)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: rubric file is required", apperrors.ErrValidationFailed)
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}
	path := fmt.Sprintf("%s/%s/%s%s", subject, strings.ReplaceAll(req.Cohort, "/", "-"), uuid.New().String(), ext)
	if err := s.storage.Upload(ctx, s.bucket, path, data, contentType); err != nil {
		return nil, err
	}

	rubric := &models.Rubric{
		Subject:  subject,
		Cohort:   strings.TrimSpace(req.Cohort),
		ItemName: strings.TrimSpace(req.ItemName),
		FilePath: path,
	}
	if err := s.rubricRepo.Upsert(ctx, rubric); err != nil {
		// The row failed, leave no orphan object behind.
		if delErr := s.storage.Delete(ctx, s.bucket, path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned rubric object")
		}
		return nil, err
	}

	return rubric, nil
}

// ListRubrics returns rubric rows for a subject and cohort with resolved
// download URLs.
func (s *RubricService) ListRubrics(ctx context.Context, subject models.Subject, cohort string) ([]dto.RubricData, error) {
	rubrics, err := s.rubricRepo.GetAll(ctx, subject, cohort)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.RubricData, 0, len(rubrics))
	for _, rubric := range rubrics {
		rows = append(rows, dto.RubricData{
			ID:       rubric.ID,
			Subject:  string(rubric.Subject),
			Cohort:   rubric.Cohort,
			ItemName: rubric.ItemName,
			FileURL:  s.resolveURL(ctx, rubric.FilePath),
		})
	}
	return rows, nil
}

// resolveURL prefers a signed URL and falls back to the public one when
// signing is unavailable.
func (s *RubricService) resolveURL(ctx context.Context, path string) string {
	if path == "" {
		return ""
	}
	url, err := s.storage.SignedURL(ctx, s.bucket, path, time.Hour)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Signed URL unavailable, using public URL")
		return s.storage.PublicURL(s.bucket, path)
	}
	return url
}

// DeleteRubric removes a rubric row and its stored file.
func (s *RubricService) DeleteRubric(ctx context.Context, id int64) error {
	rubric, err := s.rubricRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.rubricRepo.Delete(ctx, id); err != nil {
		return err
	}

	if rubric.FilePath != "" {
		if err := s.storage.Delete(ctx, s.bucket, rubric.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", rubric.FilePath).Msg("Failed to delete rubric object")
		}
	}
	return nil
}

// Templates returns the built-in assessment structure for a subject, or
// all subjects when subject is empty/ALL.
func (s *RubricService) Templates(subject models.Subject) ([]models.RubricTemplate, error) {
	if subject == "" || subject == models.SubjectAll {
		return []models.RubricTemplate{
			models.RubricTemplates[models.SubjectFYP1],
			models.RubricTemplates[models.SubjectFYP2],
			models.RubricTemplates[models.SubjectLI],
		}, nil
	}

	template, ok := models.RubricTemplates[subject]
	if !ok {
		return nil, fmt.Errorf("%w: invalid subject", apperrors.ErrValidationFailed)
	}
	return []models.RubricTemplate{template}, nil
}
