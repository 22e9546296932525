package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Type", "Resident"},
		Rows: []map[string]string{
			{"Type": "Barangay Clearance", "Resident": "Juan Dela Cruz"},
		},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "\ufeffType,Resident\nBarangay Clearance,Juan Dela Cruz\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
