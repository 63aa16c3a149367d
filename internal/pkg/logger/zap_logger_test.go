package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.log")
	l := NewIsolatedLogger(path)

	l.Info("EVENTS", "exchange recorded", map[string]interface{}{"session_id": "abc"})
	l.Debug("EVENTS", "below file level", nil)
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 1)
	assert.Equal(t, "exchange recorded", lines[0]["message"])
	assert.Equal(t, "EVENTS", lines[0]["module"])
	assert.Equal(t, "INFO", lines[0]["level"])
	details := lines[0]["details"].(map[string]interface{})
	assert.Equal(t, "abc", details["session_id"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("X", "ignored", map[string]interface{}{"error": "boom"})
	assert.Empty(t, l.FilePath())
}
