package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "audit")
    ev := PartialWriteEvent{
        Entity: "inventory", Operation: "create", RelationalID: "42", UserID: 7,
        Cause: "server selection timeout", OccurredAt: "2026-03-01T12:00:00Z",
    }
    body, err := json.Marshal(ev)
    require.NoError(t, err)

    require.NoError(t, HandleMessage(dir, body))
    require.NoError(t, HandleMessage(dir, body))

    data, err := os.ReadFile(filepath.Join(dir, AuditLogFile))
    require.NoError(t, err)
    lines := strings.Split(strings.TrimSpace(string(data)), "\n")
    require.Len(t, lines, 2)
    assert.Equal(t,
        `[2026-03-01T12:00:00Z] Partial write | entity=inventory | op=create | relational_id=42 | user_id=7 | cause="server selection timeout"`,
        lines[0])
}

func TestHandleMessage_RejectsGarbage(t *testing.T) {
    err := HandleMessage(t.TempDir(), []byte("{not json"))
    assert.Error(t, err)
}
