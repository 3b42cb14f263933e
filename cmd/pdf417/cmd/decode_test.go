package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeCommandFull(t *testing.T) {
	path := writeTempFile(t, "payload.txt", "DCSDOE\nDACJOHN\nDAYBRO")

	output, err := execCommand(t, "decode", path, "--full")
	require.NoError(t, err)

	var result decodeOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "DOE", result.Fields["LastName"])
	assert.Equal(t, "JOHN", result.Fields["FirstName"])
	assert.Equal(t, "BRO", result.Fields["EyeColor"])
}

func TestDecodeCommandSimple(t *testing.T) {
	path := writeTempFile(t, "payload.txt", "DCSDOE\nDAYBRO")

	output, err := execCommand(t, "decode", path, "--simple")
	require.NoError(t, err)

	var result decodeOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "DOE", result.Fields["LastName"])
	assert.Equal(t, "BRO", result.Fields["DAY"])
}

func TestDecodeCommandRaw(t *testing.T) {
	path := writeTempFile(t, "payload.txt", "DCSDOE")

	output, err := execCommand(t, "decode", path, "--raw")
	require.NoError(t, err)
	assert.Equal(t, "DCSDOE\n", output)
}

func TestDecodeCommandMatrix(t *testing.T) {
	payload := "DCSDOE\nDAQD12345678"
	matrix, err := pdf417.Encode([]byte(payload), pdf417.DefaultOptions())
	require.NoError(t, err)
	data, err := json.Marshal(matrix)
	require.NoError(t, err)
	path := writeTempFile(t, "symbol.json", string(data))

	output, err := execCommand(t, "decode", path, "--matrix")
	require.NoError(t, err)

	var result decodeOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "DOE", result.Fields["LastName"])
	require.NotNil(t, result.Symbol)
	assert.Equal(t, matrix.Rows, result.Symbol.Rows)
	assert.Equal(t, matrix.Columns, result.Symbol.Columns)
}

func TestDecodeCommandModeConflict(t *testing.T) {
	path := writeTempFile(t, "payload.txt", "DCSDOE")

	_, err := execCommand(t, "decode", path, "--raw", "--full")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestDecodeCommandInputConflict(t *testing.T) {
	path := writeTempFile(t, "payload.txt", "DCSDOE")

	_, err := execCommand(t, "decode", path, "--matrix", "--image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestDecodeCommandMissingFile(t *testing.T) {
	_, err := execCommand(t, "decode", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestDecodeCommandImageAutoDetect(t *testing.T) {
	// A .png input is scanned as an image, so a file that is not a valid
	// image must fail instead of being misread as payload text.
	path := writeTempFile(t, "scan.png", "not really a png")

	_, err := execCommand(t, "decode", path)
	require.Error(t, err)
}

func TestDecodeCommandBadMatrixJSON(t *testing.T) {
	path := writeTempFile(t, "symbol.json", "not json")

	_, err := execCommand(t, "decode", path, "--matrix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid matrix JSON")
}
