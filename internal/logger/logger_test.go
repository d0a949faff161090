package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "json")

	HTTPRequest("GET", "/api/bills", 200, 12*time.Millisecond)
	HTTPRequest("POST", "/api/orders", 400, time.Millisecond)
	HTTPRequest("POST", "/api/orders", 500, time.Millisecond)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	levels := make([]string, 0, 3)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		levels = append(levels, entry["level"].(string))
	}
	assert.Equal(t, []string{"INFO", "WARN", "ERROR"}, levels)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")

	EnterMethod("billService.PayBill", "billID", 1)
	DatabaseCall("SELECT", "bills")
	assert.Empty(t, buf.String())

	DatabaseResult("SELECT", 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "Database call failed")
}

func TestFileOptionsWriter(t *testing.T) {
	assert.Equal(t, os.Stdout, FileOptions{}.Writer())

	path := filepath.Join(t.TempDir(), "server.log")
	InitializeWithWriter(FileOptions{Path: path, MaxSizeMB: 1}.Writer(), "info", "json")
	Audit("bill_payment", 7, "amount", "3150")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"audit":"bill_payment"`)
	assert.Contains(t, string(data), `"user_id":7`)
}
