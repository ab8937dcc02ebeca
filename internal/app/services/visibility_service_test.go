package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
)

func newVisibilityService(store *fakeStudentStore) *VisibilityService {
	staff := &fakeStaffNames{names: map[int64]string{7: "Dr. Farah Hanim", 8: "Dr. Lim Wei"}}
	companies := &fakeCompanies{companies: map[int64]models.Company{
		22: {ID: 22, Name: "Petronas Digital Sdn Bhd", State: "Kuala Lumpur"},
	}}
	return NewVisibilityService(store, staff, companies)
}

func TestVisibleStudents_SupervisorMask(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", Name: "Aina", FYP1SVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM002", Name: "Badrul", FYP1PanelID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM003", Name: "Chong", FYP1SVID: ptrInt64(8)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{
		Subject: "FYP1", Role: "SUPERVISOR",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AM001", rows[0].MatrixNumber)
}

func TestVisibleStudents_AnyRoleIncludesPanel(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", FYP1SVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM002", FYP1PanelID: ptrInt64(7)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{Subject: "FYP1"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestVisibleStudents_PanelWithLIIsEmpty(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", LIUniSVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM002", FYP1PanelID: ptrInt64(7)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{
		Subject: "LI", Role: "PANEL",
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestVisibleStudents_LISupervisorCoversBothColumns(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", LIUniSVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM002", LIIndustrySVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM003", FYP1SVID: ptrInt64(7)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{
		Subject: "LI", Role: "SUPERVISOR",
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestVisibleStudents_FiltersComposeWithAnd(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", Name: "Aina Zulaikha", Cohort: "2023/2024", Program: "SE", FYP1SVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM002", Name: "Aina Sofea", Cohort: "2024/2025", Program: "SE", FYP1SVID: ptrInt64(7)},
		&models.Student{MatrixNumber: "AM003", Name: "Badrul", Cohort: "2023/2024", Program: "SE", FYP1SVID: ptrInt64(7)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{
		Subject: "FYP1", Cohort: "2023/2024", Search: "aina",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AM001", rows[0].MatrixNumber)
}

func TestVisibleStudents_ArchivedExcluded(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{MatrixNumber: "AM001", FYP1SVID: ptrInt64(7), IsArchived: true},
		&models.Student{MatrixNumber: "AM002", FYP1SVID: ptrInt64(7)},
	)
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AM002", rows[0].MatrixNumber)
}

func TestVisibleStudents_ResolvesNamesAndStatus(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber:  "AM001",
		Name:          "Aina",
		FYP1SVID:      ptrInt64(7),
		LICompanyID:   ptrInt64(22),
		FormLaporDiri: "docs/lapor.pdf",
	})
	svc := newVisibilityService(store)

	rows, err := svc.VisibleStudents(context.Background(), 7, dto.VisibilityFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Dr. Farah Hanim", row.FYP1SV)
	assert.Equal(t, "Petronas Digital Sdn Bhd", row.LICompany)
	assert.Equal(t, "Kuala Lumpur", row.LIState)
	assert.True(t, row.LaporDiriSubmitted)
	assert.False(t, row.AkuJanjiSubmitted)
	assert.Equal(t, string(models.StatusIncomplete), row.Status)
}
