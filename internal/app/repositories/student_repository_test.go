package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
)

func listQuery() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id").
		From("students")
}

func TestApplyListFilters_StateMatchesPlacementCompanies(t *testing.T) {
	query, ok := applyListFilters(listQuery(), dto.VisibilityFilters{State: "Johor"})
	require.True(t, ok)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "fyp1_company_id IN (SELECT id FROM companies WHERE state = $1)")
	assert.Contains(t, sql, "li_company_id IN (SELECT id FROM companies WHERE state = $2)")
	assert.Equal(t, []interface{}{"Johor", "Johor"}, args)
}

func TestApplyListFilters_StaffRoleMask(t *testing.T) {
	query, ok := applyListFilters(listQuery(), dto.VisibilityFilters{
		StaffID: 7,
		Subject: "FYP1",
		Role:    "SUPERVISOR",
	})
	require.True(t, ok)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "fyp1_sv_id = $1")
	assert.NotContains(t, sql, "fyp1_panel_id")
	assert.NotContains(t, sql, "fyp2_sv_id")
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestApplyListFilters_StaffAnyRoleCoversAllColumns(t *testing.T) {
	query, ok := applyListFilters(listQuery(), dto.VisibilityFilters{StaffID: 7})
	require.True(t, ok)

	sql, _, err := query.ToSql()
	require.NoError(t, err)

	for _, column := range []string{
		"fyp1_sv_id", "fyp2_sv_id", "li_uni_sv_id", "li_industry_sv_id",
		"fyp1_panel_id", "fyp2_panel_id",
	} {
		assert.Contains(t, sql, column)
	}
}

func TestApplyListFilters_PanelWithLIIsEmpty(t *testing.T) {
	_, ok := applyListFilters(listQuery(), dto.VisibilityFilters{
		StaffID: 7,
		Subject: "LI",
		Role:    "PANEL",
	})
	assert.False(t, ok)
}

func TestArchiveCohortQuery_ExactCaseSensitiveMatch(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := archiveCohortQuery(sb, "2023/2024", true).ToSql()
	require.NoError(t, err)

	// Plain equality, so "2023" never catches "2023/2024" and the
	// comparison keeps the stored casing.
	assert.Contains(t, sql, "cohort = $")
	assert.NotContains(t, sql, "ILIKE")
	assert.NotContains(t, sql, "LOWER")
	assert.Contains(t, args, "2023/2024")
	assert.Contains(t, args, true)
	assert.Contains(t, args, false)
}

func TestArchiveCohortQuery_UnarchiveReverses(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	archiveSQL, archiveArgs, err := archiveCohortQuery(sb, "2023", true).ToSql()
	require.NoError(t, err)
	unarchiveSQL, unarchiveArgs, err := archiveCohortQuery(sb, "2023", false).ToSql()
	require.NoError(t, err)

	assert.Equal(t, archiveSQL, unarchiveSQL)
	assert.Contains(t, archiveArgs, true)
	assert.Contains(t, unarchiveArgs, false)
	assert.Contains(t, unarchiveArgs, "2023")
}