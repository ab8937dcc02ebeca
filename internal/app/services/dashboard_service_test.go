package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
)

type fakeSummaryStore struct {
	students []*models.Student
	filters  dto.VisibilityFilters
}

func (f *fakeSummaryStore) GetAllUnpaged(_ context.Context, filters dto.VisibilityFilters, _ bool) ([]*models.Student, error) {
	f.filters = filters
	return f.students, nil
}

func TestSummary_TilesComputedFromFilteredSet(t *testing.T) {
	store := &fakeSummaryStore{students: []*models.Student{
		{
			MatrixNumber:  "AM2110010001",
			FormLaporDiri: "docs/a.pdf",
			FormAkuJanji:  "docs/b.pdf",
			FYP1Marks:     ptrFloat64(80),
			FYP2Marks:     ptrFloat64(75),
			LIMarks:       ptrFloat64(90),
			FYP1CompanyID: ptrInt64(1),
			LICompanyID:   ptrInt64(2),
		},
		{
			MatrixNumber:  "AM2110010002",
			FormLaporDiri: "docs/a.pdf",
			FormAkuJanji:  "docs/b.pdf",
			FYP1CompanyID: ptrInt64(1),
		},
		{
			MatrixNumber: "AM2110010003",
			LICompanyID:  ptrInt64(3),
		},
		{
			MatrixNumber: "AM2110010004",
			FYP1Marks:    ptrFloat64(0),
			FYP2Marks:    ptrFloat64(0),
			LIMarks:      ptrFloat64(0),
		},
	}}
	svc := NewDashboardService(store)

	summary, err := svc.Summary(context.Background(), dto.VisibilityFilters{Cohort: "2023"})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalStudents)
	// Companies 1, 2 and 3; the shared company counts once.
	assert.Equal(t, 3, summary.TotalCompanies)
	assert.Equal(t, 2, summary.DocsPending)
	// Zero or missing marks everywhere counts as grading pending even
	// when documents are still missing.
	assert.Equal(t, 3, summary.GradingPending)

	assert.Equal(t, "2023", store.filters.Cohort)
}

func TestSummary_EmptySet(t *testing.T) {
	svc := NewDashboardService(&fakeSummaryStore{})

	summary, err := svc.Summary(context.Background(), dto.VisibilityFilters{})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalStudents)
	assert.Equal(t, 0, summary.TotalCompanies)
	assert.Equal(t, 0, summary.GradingPending)
}
