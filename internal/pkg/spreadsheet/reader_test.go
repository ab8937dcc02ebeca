package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testColumns = []ColumnSpec{
	{Name: "name", Synonyms: []string{"name", "student_name", "student name"}, Required: true},
	{Name: "matrix_number", Synonyms: []string{"matrix number", "matrix_no", "matrix no"}, Required: true},
	{Name: "program", Synonyms: []string{"program", "programme"}},
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return &buf
}

func TestRead_ResolvesHeaderSynonyms(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Student Name", "MATRIX_NO", "Programme"},
		{"Aina Zulaikha", "AM2110012345", "Software Engineering"},
	})

	rows, err := Read(buf, testColumns)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "Aina Zulaikha", rows[0].Get("name"))
	assert.Equal(t, "AM2110012345", rows[0].Get("matrix_number"))
	assert.Equal(t, "Software Engineering", rows[0].Get("program"))
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Name", "Programme"},
		{"Aina", "SE"},
	})

	_, err := Read(buf, testColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matrix_number")
}

func TestRead_OptionalColumnAbsent(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Name", "Matrix Number"},
		{"Aina", "AM2110012345"},
	})

	rows, err := Read(buf, testColumns)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Get("program"))
}

func TestRead_SkipsEmptyRowsAndTrims(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Name", "Matrix Number"},
		{"  Aina  ", " AM2110012345 "},
		{"", ""},
		{"Badrul", "AM2110067890"},
	})

	rows, err := Read(buf, testColumns)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aina", rows[0].Get("name"))
	assert.Equal(t, "AM2110012345", rows[0].Get("matrix_number"))
	assert.Equal(t, 4, rows[1].Number)
}

func TestRead_RejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a workbook")), testColumns)
	assert.Error(t, err)
}
