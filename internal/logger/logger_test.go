package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	got := formatFields(Fields{"seed": uint32(42), "bpm": 80, "root": 43.65, "run_id": "abc"})
	assert.Equal(t, "{bpm=80, root=43.65, run_id=abc, seed=42}", got)
}

func TestWithRun(t *testing.T) {
	base := WithRun("run-1", 7)
	extended := base.With(Fields{"stage": "render"})

	assert.Len(t, base, 2)
	assert.Equal(t, "render", extended["stage"])
	assert.Equal(t, uint32(7), extended["seed"])
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("starting", Fields{"bars": 40})
	Warn("entropy skipped", nil)
	Debug("phrase", Fields{"notes": 3})
	Error("params failed", errors.New("boom"), Fields{"model": "gemini-2.5-flash"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] starting {bars=40}")
	assert.Contains(t, out, "[WARN] entropy skipped")
	assert.Contains(t, out, "[DEBUG] phrase {notes=3}")
	assert.Contains(t, out, "[ERROR] params failed: boom {model=gemini-2.5-flash}")
}
