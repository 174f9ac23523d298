package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arielreyes/crewsight/pkg/core/dataset"
)

func TestLoad_ByHeaderName(t *testing.T) {
	data := []byte("RUT\n12.345.678-5\n9876543-2\nnot-an-id\n")

	r, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains("12345678-5"))
	assert.True(t, r.Contains("9876543-2"))
	assert.False(t, r.Contains("1111111-1"))
}

func TestLoad_BOMHeader(t *testing.T) {
	data := []byte("\xEF\xBB\xBFrut\n12345678-5\n")

	r, err := Load(data)
	require.NoError(t, err)
	assert.True(t, r.Contains("12345678-5"))
}

func TestLoad_ByColumnScoring(t *testing.T) {
	// No known header name: the second column scores as the ID column.
	data := []byte("nombre,numero\nJuan Perez,12.345.678-5\nAna Soto,9876543-2\nPedro Rojas,1111111-1\n")

	r, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("12345678-5"))
	assert.True(t, r.Contains("1111111-1"))
}

func TestLoad_HeaderlessFile(t *testing.T) {
	// First line is data, not a header: it must not be lost.
	data := []byte("12.345.678-5\n9876543-2\n")

	r, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains("12345678-5"))
	assert.True(t, r.Contains("9876543-2"))
}

func TestLoad_LowScoreFallsBackToFirstColumn(t *testing.T) {
	// Nothing looks like an ID anywhere: first column is used, and since
	// none of its values normalize, the roster ends up empty.
	data := []byte("a,b\nfoo,bar\nbaz,qux\n")

	r, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestFilter(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []dataset.Record{
		{Collaborator: "Juan", ID: "12345678-5", Date: day},
		{Collaborator: "Ana", ID: "9876543-2", Date: day},
		{Collaborator: "NoID", ID: "", Date: day},
	}
	r := &Roster{ids: map[string]bool{"12345678-5": true}}

	kept, excluded := Filter(records, r)

	require.Len(t, kept, 1)
	assert.Equal(t, "Juan", kept[0].Collaborator)

	require.Len(t, excluded, 2)
	assert.Equal(t, "Ana", excluded[0].Collaborator)
	assert.Equal(t, "NoID", excluded[1].Collaborator)
}
