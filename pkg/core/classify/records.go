package classify

import (
	"go.uber.org/zap"

	"github.com/arielreyes/crewsight/pkg/core/dataset"
)

// Classified is a normalized record plus its availability flag. Produced
// once per row and never mutated afterwards.
type Classified struct {
	dataset.Record
	Flag int
}

// BatchClassifier is the injectable alternative to the rule engine, e.g. a
// trained text model owned elsewhere. It must return one flag per input
// text, in order, and must not retain or mutate the input slice.
type BatchClassifier interface {
	PredictFlags(texts []string) ([]int, error)
}

// Records classifies every record. When batch is non-nil its predictions are
// used; if the batch call fails (or returns the wrong number of flags) the
// whole run falls back to the rule-based path — never a partial mix.
func Records(records []dataset.Record, rs *Ruleset, batch BatchClassifier, logger *zap.Logger) []Classified {
	out := make([]Classified, len(records))

	if batch != nil {
		if flags, ok := predictBatch(records, batch, logger); ok {
			for i, r := range records {
				flag := flags[i]
				if flag != Available {
					flag = NotAvailable
				}
				out[i] = Classified{Record: r, Flag: flag}
			}
			return out
		}
	}

	for i, r := range records {
		out[i] = Classified{Record: r, Flag: rs.Classify(r.Activity)}
	}
	return out
}

// predictBatch runs the injected classifier and validates its output shape.
func predictBatch(records []dataset.Record, batch BatchClassifier, logger *zap.Logger) ([]int, bool) {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Activity
	}

	flags, err := batch.PredictFlags(texts)
	if err != nil {
		logger.Warn("Batch classifier failed, falling back to rules for the whole run",
			zap.Error(err))
		return nil, false
	}
	if len(flags) != len(records) {
		logger.Warn("Batch classifier returned wrong flag count, falling back to rules",
			zap.Int("want", len(records)),
			zap.Int("got", len(flags)))
		return nil, false
	}
	return flags, true
}
