package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arielreyes/crewsight/internal/config"
	"github.com/arielreyes/crewsight/pkg/core/analysis"
	"github.com/arielreyes/crewsight/pkg/core/classify"
	"github.com/arielreyes/crewsight/pkg/core/dataset"
	"github.com/arielreyes/crewsight/pkg/core/engine"
	"github.com/arielreyes/crewsight/pkg/core/roster"
	"github.com/arielreyes/crewsight/pkg/core/unassigned"
	"github.com/arielreyes/crewsight/pkg/core/window"
)

// AnalyzeOptions carries the per-run inputs for an analysis.
type AnalyzeOptions struct {
	// DatasetData is the raw daily-activity file contents. Required.
	DatasetData []byte
	// RosterData is an optional allow-list file. When present, rows whose
	// ID is not on the roster are excluded before classification.
	RosterData []byte
	// WindowStart and WindowEnd pin the reporting window explicitly.
	// When both are nil the window is resolved from AsOf.
	WindowStart *time.Time
	WindowEnd   *time.Time
	// AsOf anchors automatic window resolution. Zero means time.Now().
	AsOf time.Time
	// Batch is an optional external classifier tried before the rules.
	Batch classify.BatchClassifier
	// SkipDepartmentFilter keeps rows from every department regardless
	// of the configured allow-list.
	SkipDepartmentFilter bool
}

// AnalyzeResult is the full output of one analysis run.
type AnalyzeResult struct {
	RunID      string
	Window     window.Window
	Thresholds engine.Thresholds

	Summary    []engine.Summary
	Detail     []classify.Classified
	Unassigned []dataset.Record
	// Excluded holds rows dropped by the roster allow-list.
	Excluded []dataset.Record
	Report   *analysis.Report
}

// Analyze runs the full pipeline: parse the dataset, apply the roster and
// department filters, resolve the window, classify each row, and aggregate
// per-person availability.
func Analyze(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts AnalyzeOptions) (*AnalyzeResult, error) {
	if len(opts.DatasetData) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	runID := uuid.New().String()
	logger.Info("Starting analysis run", zap.String("run_id", runID))

	records, err := dataset.Parse(opts.DatasetData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	logger.Debug("Dataset parsed", zap.Int("records", len(records)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &AnalyzeResult{RunID: runID}

	// Roster allow-list filter
	if len(opts.RosterData) > 0 {
		allowList, err := roster.Load(opts.RosterData)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
		logger.Debug("Roster loaded", zap.Int("ids", allowList.Len()))

		var excluded []dataset.Record
		records, excluded = roster.Filter(records, allowList)
		result.Excluded = excluded
		if len(excluded) > 0 {
			logger.Info("Rows excluded by roster",
				zap.Int("excluded", len(excluded)),
				zap.Int("kept", len(records)))
		}
	}

	// The unassigned audit covers every roster-kept row, including rows
	// from departments the analysis itself filters out below.
	audited := records

	// Department filter
	if !opts.SkipDepartmentFilter {
		before := len(records)
		records = filterDepartments(records, cfg.Filters.AllowedDepartments)
		if dropped := before - len(records); dropped > 0 {
			logger.Debug("Rows outside allowed departments dropped", zap.Int("dropped", dropped))
		}
	}

	// Window resolution
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	result.Window = window.Resolve(opts.WindowStart, opts.WindowEnd, asOf)
	logger.Info("Reporting window resolved",
		zap.String("start", result.Window.Start.Format("2006-01-02")),
		zap.String("end", result.Window.End.Format("2006-01-02")),
		zap.Int("days", result.Window.Days()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Classification and aggregation
	ruleset := classify.NewRuleset(cfg.Availability)
	classified := classify.Records(records, ruleset, opts.Batch, logger)

	result.Summary, result.Detail, result.Thresholds = engine.Aggregate(classified, result.Window, cfg.Rules)
	result.Unassigned = unassigned.Extract(audited, &result.Window)
	result.Report = analysis.Build(result.Detail, result.Window)

	logger.Info("Analysis run complete",
		zap.String("run_id", runID),
		zap.Int("people", len(result.Summary)),
		zap.Int("detail_rows", len(result.Detail)),
		zap.Int("unassigned", len(result.Unassigned)))

	return result, nil
}

// filterDepartments keeps records whose department is on the allow-list.
// An empty allow-list keeps everything. Matching ignores case and padding.
func filterDepartments(records []dataset.Record, allowed []string) []dataset.Record {
	if len(allowed) == 0 {
		return records
	}
	allowSet := make(map[string]bool, len(allowed))
	for _, d := range allowed {
		allowSet[strings.ToUpper(strings.TrimSpace(d))] = true
	}

	kept := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if allowSet[strings.ToUpper(strings.TrimSpace(r.Department))] {
			kept = append(kept, r)
		}
	}
	return kept
}

// ExtractUnassigned parses a dataset and returns only the rows with a null
// or empty activity, optionally restricted to a window.
func ExtractUnassigned(ctx context.Context, logger *zap.Logger, data []byte, w *window.Window) ([]dataset.Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	records, err := dataset.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := unassigned.Extract(records, w)
	logger.Info("Unassigned rows extracted",
		zap.Int("total", len(records)),
		zap.Int("unassigned", len(rows)))
	return rows, nil
}
