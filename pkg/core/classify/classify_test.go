package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arielreyes/crewsight/internal/config"
)

func defaultRuleset() *Ruleset {
	return NewRuleset(config.Default().Availability)
}

func TestClassify_WhitelistShortCircuits(t *testing.T) {
	rs := defaultRuleset()

	// "disponible" as a substring wins before any other list is consulted
	assert.Equal(t, Available, rs.Classify("Disponible en faena"))
	assert.Equal(t, Available, rs.Classify("DISPONIBLE"))
	assert.Equal(t, Available, rs.Classify("  disponible  "))
}

func TestClassify_BlacklistPrefixes(t *testing.T) {
	rs := defaultRuleset()

	assert.Equal(t, NotAvailable, rs.Classify("SER-2025-0154"))
	assert.Equal(t, NotAvailable, rs.Classify("con-2025-0156"))
	assert.Equal(t, NotAvailable, rs.Classify("LAB-2025-0029"))
}

func TestClassify_BlacklistExact(t *testing.T) {
	rs := defaultRuleset()

	assert.Equal(t, NotAvailable, rs.Classify("Vacaciones"))
	assert.Equal(t, NotAvailable, rs.Classify("Descanso"))
	// Diacritics fold before comparison
	assert.Equal(t, NotAvailable, rs.Classify("Licencia Médica"))
	assert.Equal(t, NotAvailable, rs.Classify("licencia medica"))
}

func TestClassify_NeutralKeywords(t *testing.T) {
	rs := defaultRuleset()

	assert.Equal(t, NotAvailable, rs.Classify("Oficina Central Sucre"))
	assert.Equal(t, NotAvailable, rs.Classify("Teletrabajo"))
	assert.Equal(t, NotAvailable, rs.Classify("Capacitación"))
}

func TestClassify_DefaultIsNotAvailable(t *testing.T) {
	rs := defaultRuleset()

	// Unknown activity text is conservatively unavailable
	assert.Equal(t, NotAvailable, rs.Classify("Something entirely new"))
	assert.Equal(t, NotAvailable, rs.Classify(""))
	assert.Equal(t, NotAvailable, rs.Classify("   "))
}

func TestClassify_IsTotalAndDeterministic(t *testing.T) {
	rs := defaultRuleset()

	inputs := []string{
		"Disponible", "SER-2024-0001", "vacaciones", "oficina", "???", "",
		"Licencia Médica", "disponible en faena", "\t\n",
	}
	for _, in := range inputs {
		first := rs.Classify(in)
		assert.Contains(t, []int{NotAvailable, Available}, first)
		assert.Equal(t, first, rs.Classify(in), "Classify(%q) not deterministic", in)
	}
}

func TestClassify_EmptyRuleset(t *testing.T) {
	rs := NewRuleset(config.AvailabilityRules{})

	assert.Equal(t, NotAvailable, rs.Classify("Disponible"))
	assert.Equal(t, NotAvailable, rs.Classify(""))
}
