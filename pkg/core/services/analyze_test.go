package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arielreyes/crewsight/internal/config"
	"github.com/arielreyes/crewsight/pkg/core/dataset"
	"github.com/arielreyes/crewsight/pkg/core/engine"
	"github.com/arielreyes/crewsight/pkg/core/window"
)

// sampleDataset builds a small activity file covering the January 2024
// window (2023-12-27 to 2024-01-26).
const sampleDataset = `Colaborador,Gerencia,RUT,Ciudad Residencia,Fecha,Actividad Diaria
Juan Perez Soto,OPER,12.345.678-5,Antofagasta,2024-01-02,Disponible
Juan Perez Soto,OPER,12.345.678-5,Antofagasta,2024-01-03,Disponible
Juan Perez Soto,OPER,12.345.678-5,Antofagasta,2024-01-04,Disponible
Ana Rojas Diaz,OPER,9.876.543-3,Calama,2024-01-02,Vacaciones
Ana Rojas Diaz,OPER,9.876.543-3,Calama,2024-01-03,SER-2025-0154
Pedro Silva,VENTAS,7.654.321-6,Santiago,2024-01-02,Disponible
Rosa Leiva,OPER,5.555.555-5,Iquique,2024-01-05,
`

func testOptions() AnalyzeOptions {
	start := time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	return AnalyzeOptions{
		DatasetData: []byte(sampleDataset),
		WindowStart: &start,
		WindowEnd:   &end,
	}
}

func TestAnalyze(t *testing.T) {
	cfg := config.Default()
	result, err := Analyze(context.Background(), cfg, zap.NewNop(), testOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 31, result.Window.Days())

	// Pedro Silva is outside the allowed departments, so three people
	// remain: Juan, Ana, and Rosa (whose only activity is blank).
	require.Len(t, result.Summary, 3)

	// Juan: 3 available days, streak 3. Window thresholds for 31 days keep
	// the 30-day baselines, so 3 days is below high_days=7 but streak 3
	// meets high_streak=3.
	juan := result.Summary[0]
	assert.Equal(t, "12345678-5", juan.ID)
	assert.Equal(t, 3, juan.AvailableDays)
	assert.Equal(t, 3, juan.MaxStreak)
	assert.Equal(t, engine.CriticalityHigh, juan.Criticality)

	// Ana and Rosa: 0 available days each, at or below low_days=4.
	for _, s := range result.Summary[1:] {
		assert.Equal(t, 0, s.AvailableDays)
		assert.Equal(t, engine.CriticalityLow, s.Criticality)
	}

	// Rosa's empty activity shows up as unassigned.
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, "Rosa Leiva", result.Unassigned[0].Collaborator)

	require.NotNil(t, result.Report)
	assert.Equal(t, []string{"SER-2025-0154"}, result.Report.ProjectCodes)
}

func TestAnalyze_SkipDepartmentFilter(t *testing.T) {
	cfg := config.Default()
	opts := testOptions()
	opts.SkipDepartmentFilter = true

	result, err := Analyze(context.Background(), cfg, zap.NewNop(), opts)
	require.NoError(t, err)

	// Pedro Silva from VENTAS is kept too.
	assert.Len(t, result.Summary, 4)
}

func TestAnalyze_RosterFilter(t *testing.T) {
	cfg := config.Default()
	opts := testOptions()
	opts.RosterData = []byte("RUT\n12.345.678-5\n5555555-5\n")

	result, err := Analyze(context.Background(), cfg, zap.NewNop(), opts)
	require.NoError(t, err)

	// Juan and Rosa stay. Rosa's only activity is blank so she rates LOW.
	require.Len(t, result.Summary, 2)
	assert.Equal(t, "12345678-5", result.Summary[0].ID)
	assert.Equal(t, "5555555-5", result.Summary[1].ID)

	// Ana's two rows and Pedro's row were dropped by the roster.
	assert.Len(t, result.Excluded, 3)
}

func TestAnalyze_UnassignedIncludesFilteredDepartments(t *testing.T) {
	cfg := config.Default()
	opts := testOptions()
	opts.DatasetData = []byte(sampleDataset +
		"Luis Vega,ADMIN,6.666.666-6,Copiapo,2024-01-08,\n")

	result, err := Analyze(context.Background(), cfg, zap.NewNop(), opts)
	require.NoError(t, err)

	// ADMIN is outside the allowed departments, so Luis never reaches the
	// summary, but his blank-activity row still shows up in the audit.
	for _, s := range result.Summary {
		assert.NotEqual(t, "6666666-6", s.ID)
	}

	require.Len(t, result.Unassigned, 2)
	ids := []string{result.Unassigned[0].ID, result.Unassigned[1].ID}
	assert.Contains(t, ids, "6666666-6")
	assert.Contains(t, ids, "5555555-5")
}

func TestAnalyze_EmptyDataset(t *testing.T) {
	cfg := config.Default()
	_, err := Analyze(context.Background(), cfg, zap.NewNop(), AnalyzeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestAnalyze_MissingColumns(t *testing.T) {
	cfg := config.Default()
	opts := AnalyzeOptions{DatasetData: []byte("Foo,Bar\n1,2\n")}

	_, err := Analyze(context.Background(), cfg, zap.NewNop(), opts)
	require.Error(t, err)

	var missing *dataset.MissingColumnsError
	assert.ErrorAs(t, err, &missing)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	cfg := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, cfg, zap.NewNop(), testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilterDepartments(t *testing.T) {
	records := []dataset.Record{
		{ID: "1-9", Department: "OPER"},
		{ID: "2-7", Department: " oper "},
		{ID: "3-5", Department: "VENTAS"},
		{ID: "4-3", Department: "OPER_OF"},
	}

	kept := filterDepartments(records, []string{"OPER", "OPER_OF"})

	require.Len(t, kept, 3)
	for _, r := range kept {
		assert.NotEqual(t, "VENTAS", r.Department)
	}
}

func TestFilterDepartments_EmptyAllowListKeepsAll(t *testing.T) {
	records := []dataset.Record{
		{ID: "1-9", Department: "OPER"},
		{ID: "3-5", Department: "VENTAS"},
	}

	kept := filterDepartments(records, nil)

	assert.Len(t, kept, 2)
}

func TestExtractUnassigned(t *testing.T) {
	rows, err := ExtractUnassigned(context.Background(), zap.NewNop(), []byte(sampleDataset), nil)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Rosa Leiva", rows[0].Collaborator)
}

func TestExtractUnassigned_Windowed(t *testing.T) {
	w := window.Window{
		Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC),
	}

	rows, err := ExtractUnassigned(context.Background(), zap.NewNop(), []byte(sampleDataset), &w)
	require.NoError(t, err)

	// Rosa's empty row is on 2024-01-05, before the window.
	assert.Empty(t, rows)
}
