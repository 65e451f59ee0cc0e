package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.txt")
	l := New(path)
	l.Log("hello")
	l.Infof("ball at %d", 40)
	l.Errorf("listen: %s", "busy")

	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[1], "] ball at 40"))
	assert.True(t, strings.HasSuffix(lines[2], "] error: listen: busy"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))
}

func TestDebugfNeedsVerbose(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "game.txt"))
	l.Debugf("hidden")
	assert.Empty(t, l.Lines())
	l.Verbose = true
	l.Debugf("collided with body: %s", "bar")
	require.Len(t, l.Lines(), 1)
	assert.Contains(t, l.Lines()[0], "collided with body: bar")
}

func TestMirror(t *testing.T) {
	var buf bytes.Buffer
	l := New(filepath.Join(t.TempDir(), "game.txt"))
	l.Mirror = slog.New(slog.NewTextHandler(&buf, nil))
	l.Errorf("boom")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `msg="error: boom"`)
}

func TestLinesAreBounded(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "game.txt"))
	for i := 0; i < maxLines+10; i++ {
		l.Infof("line %d", i)
	}
	lines := l.Lines()
	assert.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "line 509"))
}
