package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
)

func TestSyncStudents_CarriesAssignmentsForward(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber:  "AM2110012345",
		FYP1CompanyID: ptrInt64(10),
		FYP1PanelID:   ptrInt64(20),
		FYP1SVID:      ptrInt64(30),
	})
	audit := &fakeAudit{}
	svc := NewSyncService(store, audit)

	results, err := svc.SyncStudents(context.Background(), []string{"AM2110012345"}, "admin")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].FieldsChanged)
	assert.Empty(t, results[0].Error)

	student := store.students["AM2110012345"]
	require.NotNil(t, student.LICompanyID)
	assert.Equal(t, int64(10), *student.LICompanyID)
	require.NotNil(t, student.FYP2PanelID)
	assert.Equal(t, int64(20), *student.FYP2PanelID)
	require.NotNil(t, student.LIUniSVID)
	assert.Equal(t, int64(30), *student.LIUniSVID)

	assert.Len(t, audit.entries, 3)
}

func TestSyncStudents_NeverOverwritesExistingTarget(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber:  "AM2110012345",
		FYP1CompanyID: ptrInt64(10),
		LICompanyID:   ptrInt64(99),
	})
	svc := NewSyncService(store, &fakeAudit{})

	results, err := svc.SyncStudents(context.Background(), []string{"AM2110012345"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, results[0].FieldsChanged)

	student := store.students["AM2110012345"]
	assert.Equal(t, int64(99), *student.LICompanyID)
}

func TestSyncStudents_Idempotent(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber:  "AM2110012345",
		FYP1CompanyID: ptrInt64(10),
	})
	audit := &fakeAudit{}
	svc := NewSyncService(store, audit)

	first, err := svc.SyncStudents(context.Background(), []string{"AM2110012345"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, first[0].FieldsChanged)

	second, err := svc.SyncStudents(context.Background(), []string{"AM2110012345"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, second[0].FieldsChanged)

	// Only the run that changed something left an audit trail.
	assert.Len(t, audit.entries, 1)
}

func TestSyncStudents_SkipsEmptySources(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := NewSyncService(store, &fakeAudit{})

	results, err := svc.SyncStudents(context.Background(), []string{"AM2110012345"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, results[0].FieldsChanged)
	assert.Empty(t, results[0].Error)
}

func TestSyncStudents_ReportsPerStudentErrors(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber:  "AM2110012345",
		FYP1CompanyID: ptrInt64(10),
	})
	svc := NewSyncService(store, &fakeAudit{})

	results, err := svc.SyncStudents(context.Background(), []string{"MISSING001", "AM2110012345"}, "admin")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, 0, results[0].FieldsChanged)

	// The batch continues past the failure.
	assert.Empty(t, results[1].Error)
	assert.Equal(t, 1, results[1].FieldsChanged)
}

func TestSyncStudents_EmptySelectionRejected(t *testing.T) {
	svc := NewSyncService(newFakeStudentStore(), &fakeAudit{})

	_, err := svc.SyncStudents(context.Background(), nil, "admin")
	assert.Error(t, err)
}
