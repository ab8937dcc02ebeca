package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
)

func marksRequest(t *testing.T, body string) *dto.SetMarksRequest {
	t.Helper()
	var req dto.SetMarksRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func gradedStudent() *models.Student {
	return &models.Student{
		MatrixNumber:  "AM2110012345",
		FormLaporDiri: "docs/lapor.pdf",
		FormAkuJanji:  "docs/aku.pdf",
	}
}

func TestSetMarks_SetsProvidedFields(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	audit := &fakeAudit{}
	svc := NewMarksService(store, audit)

	data, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 85.5, "liMarks": 70}`), "staff KP1234")
	require.NoError(t, err)

	require.NotNil(t, data.FYP1Marks)
	assert.Equal(t, 85.5, *data.FYP1Marks)
	require.NotNil(t, data.LIMarks)
	assert.Equal(t, 70.0, *data.LIMarks)
	assert.Nil(t, data.FYP2Marks)
	assert.Equal(t, string(models.StatusOngoing), data.Status)

	assert.Len(t, audit.entries, 1)
}

func TestSetMarks_OneAuditEntrySummarizesAllSubjects(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	audit := &fakeAudit{}
	svc := NewMarksService(store, audit)

	_, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 80, "fyp2Marks": 75}`), "admin")
	require.NoError(t, err)

	// Two fields changed in one call still produce a single entry.
	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "Marks Update", entry.FieldChanged)
	assert.Equal(t, "None|None|None", entry.OldValue)
	assert.Equal(t, "80|75|None", entry.NewValue)
	assert.Equal(t, "admin", entry.ChangedBy)
}

func TestSetMarks_BoundaryValues(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	svc := NewMarksService(store, &fakeAudit{})

	_, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 0, "fyp2Marks": 100}`), "admin")
	require.NoError(t, err)

	student := store.students["AM2110012345"]
	assert.Equal(t, 0.0, *student.FYP1Marks)
	assert.Equal(t, 100.0, *student.FYP2Marks)
}

func TestSetMarks_RejectsOutOfRange(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	svc := NewMarksService(store, &fakeAudit{})

	_, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": -1}`), "admin")
	assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange)

	_, err = svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"liMarks": 100.5}`), "admin")
	assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange)

	// Nothing was written.
	student := store.students["AM2110012345"]
	assert.Nil(t, student.FYP1Marks)
	assert.Nil(t, student.LIMarks)
}

func TestSetMarks_ExplicitNullClears(t *testing.T) {
	student := gradedStudent()
	student.FYP1Marks = ptrFloat64(60)
	store := newFakeStudentStore(student)
	audit := &fakeAudit{}
	svc := NewMarksService(store, audit)

	data, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": null}`), "admin")
	require.NoError(t, err)
	assert.Nil(t, data.FYP1Marks)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "60|None|None", audit.entries[0].OldValue)
	assert.Equal(t, "None|None|None", audit.entries[0].NewValue)
}

func TestSetMarks_OmittedFieldsUntouched(t *testing.T) {
	student := gradedStudent()
	student.FYP2Marks = ptrFloat64(75)
	store := newFakeStudentStore(student)
	svc := NewMarksService(store, &fakeAudit{})

	data, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 50}`), "admin")
	require.NoError(t, err)

	require.NotNil(t, data.FYP2Marks)
	assert.Equal(t, 75.0, *data.FYP2Marks)
}

func TestSetMarks_AllOmittedIsNoOp(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	audit := &fakeAudit{}
	svc := NewMarksService(store, audit)

	data, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{}`), "admin")
	require.NoError(t, err)
	assert.Equal(t, "AM2110012345", data.MatrixNumber)
	assert.Empty(t, audit.entries)
}

func TestSetMarks_GradedStatusNeedsAllThreePositive(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	svc := NewMarksService(store, &fakeAudit{})

	data, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 80, "fyp2Marks": 75, "liMarks": 90}`), "admin")
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusGraded), data.Status)

	// A zero mark counts as not yet graded.
	data, err = svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"liMarks": 0}`), "admin")
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusOngoing), data.Status)
}

func TestSetMarks_RejectedWritePropagates(t *testing.T) {
	store := newFakeStudentStore(gradedStudent())
	store.failWrites = true
	svc := NewMarksService(store, &fakeAudit{})

	_, err := svc.SetMarks(context.Background(), "AM2110012345",
		marksRequest(t, `{"fyp1Marks": 80}`), "admin")
	assert.ErrorIs(t, err, apperrors.ErrUpdateRejected)
}

func TestGetMarks_UnknownStudent(t *testing.T) {
	svc := NewMarksService(newFakeStudentStore(), &fakeAudit{})

	_, err := svc.GetMarks(context.Background(), "MISSING001")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
