package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newAssignmentService(store *fakeStudentStore, audit *fakeAudit) *AssignmentService {
	return NewAssignmentService(store, newFakeChecker(7, 8), newFakeChecker(22), audit)
}

func TestSetField_StaffReference(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	audit := &fakeAudit{}
	svc := newAssignmentService(store, audit)

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 SV", Value: strPtr("7")}, "admin")
	require.NoError(t, err)

	student := store.students["AM2110012345"]
	require.NotNil(t, student.FYP1SVID)
	assert.Equal(t, int64(7), *student.FYP1SVID)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "FYP 1 SV", audit.entries[0].FieldChanged)
	assert.Equal(t, "None", audit.entries[0].OldValue)
	assert.Equal(t, "7", audit.entries[0].NewValue)
}

func TestSetField_FieldNameCaseInsensitive(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "fyp 1 panel", Value: strPtr("8")}, "admin")
	require.NoError(t, err)

	student := store.students["AM2110012345"]
	require.NotNil(t, student.FYP1PanelID)
	assert.Equal(t, int64(8), *student.FYP1PanelID)
}

func TestSetField_UnknownField(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "Favourite Colour", Value: strPtr("blue")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrUnknownField)
}

func TestSetField_MissingStaffReference(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 SV", Value: strPtr("999")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
}

func TestSetField_CompanyReference(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "LI Company", Value: strPtr("22")}, "admin")
	require.NoError(t, err)

	// Staff IDs are not valid company references.
	err = svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "LI Company", Value: strPtr("7")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
}

func TestSetField_NonNumericReference(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 2 SV", Value: strPtr("Dr. Farah")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSetField_ClearReference(t *testing.T) {
	store := newFakeStudentStore(&models.Student{
		MatrixNumber: "AM2110012345",
		FYP1SVID:     ptrInt64(7),
	})
	audit := &fakeAudit{}
	svc := newAssignmentService(store, audit)

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 SV", Value: nil}, "admin")
	require.NoError(t, err)

	assert.Nil(t, store.students["AM2110012345"].FYP1SVID)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "7", audit.entries[0].OldValue)
	assert.Equal(t, "None", audit.entries[0].NewValue)
}

func TestSetField_MarkValidated(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345"})
	svc := newAssignmentService(store, &fakeAudit{})

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 Marks", Value: strPtr("101")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange)

	err = svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 Marks", Value: strPtr("88.5")}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 88.5, *store.students["AM2110012345"].FYP1Marks)
}

func TestSetField_Title(t *testing.T) {
	store := newFakeStudentStore(&models.Student{MatrixNumber: "AM2110012345", FYPTitle: "Old Title"})
	audit := &fakeAudit{}
	svc := newAssignmentService(store, audit)

	err := svc.SetField(context.Background(), "AM2110012345",
		&dto.SetAssignmentFieldRequest{Field: "FYP Title", Value: strPtr("Smart Attendance System")}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Smart Attendance System", store.students["AM2110012345"].FYPTitle)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "Old Title", audit.entries[0].OldValue)
}

func TestSetField_UnknownStudent(t *testing.T) {
	svc := newAssignmentService(newFakeStudentStore(), &fakeAudit{})

	err := svc.SetField(context.Background(), "MISSING001",
		&dto.SetAssignmentFieldRequest{Field: "FYP 1 SV", Value: strPtr("7")}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
