package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
)

func TestGenerateCommandMatrixOutput(t *testing.T) {
	record := writeTempFile(t, "record.json", `{"LastName":"DOE","FirstName":"JANE"}`)

	output, err := execCommand(t, "generate", record)
	require.NoError(t, err)

	var matrix pdf417.SymbolMatrix
	require.NoError(t, json.Unmarshal([]byte(output), &matrix))
	assert.Equal(t, 10, matrix.Columns)
	assert.Equal(t, 2, matrix.SecurityLevel)

	result, err := pdf417.DecodeMatrix(&matrix)
	require.NoError(t, err)
	assert.Contains(t, string(result.Payload), "DCSDOE")
	assert.Contains(t, string(result.Payload), "DACJANE")
}

func TestGenerateCommandOptions(t *testing.T) {
	record := writeTempFile(t, "record.json", `{"LastName":"DOE"}`)
	out := filepath.Join(t.TempDir(), "symbol.json")

	_, err := execCommand(t, "generate", record,
		"--columns", "6", "--security-level", "3", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var matrix pdf417.SymbolMatrix
	require.NoError(t, json.Unmarshal(data, &matrix))
	assert.Equal(t, 6, matrix.Columns)
	assert.Equal(t, 3, matrix.SecurityLevel)
}

func TestGenerateCommandEnvelope(t *testing.T) {
	record := writeTempFile(t, "record.json", `{"LastName":"DOE"}`)

	output, err := execCommand(t, "generate", record,
		"--envelope", "--issuer-id", "636014", "--aamva-version", "9")
	require.NoError(t, err)

	var matrix pdf417.SymbolMatrix
	require.NoError(t, json.Unmarshal([]byte(output), &matrix))
	result, err := pdf417.DecodeMatrix(&matrix)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(result.Payload), "@\n\x1e\rANSI 63601409"))
}

func TestGenerateCommandPNGOutput(t *testing.T) {
	record := writeTempFile(t, "record.json", `{"LastName":"DOE"}`)
	out := filepath.Join(t.TempDir(), "preview.png")

	_, err := execCommand(t, "generate", record, "--output", out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerateCommandRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"not json":    "nope",
		"unknown key": `{"no such field":"x"}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			record := writeTempFile(t, "record.json", content)
			_, err := execCommand(t, "generate", record)
			require.Error(t, err)
		})
	}
}

func TestGenerateCommandBadColumns(t *testing.T) {
	record := writeTempFile(t, "record.json", `{"LastName":"DOE"}`)

	_, err := execCommand(t, "generate", record, "--columns", "99")
	require.Error(t, err)
}
