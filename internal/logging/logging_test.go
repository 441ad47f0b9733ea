package logger

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestVerbosityLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
	}{
		{name: "quiet", logger: Logger{}},
		{name: "verbose", logger: Logger{Verbose: true}, wantInfo: true},
		{name: "debug", logger: Logger{Debug: true}, wantInfo: true, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errOut

			l.Infof("loaded %d projects", 2)
			l.Debugf("config dir %s", "/tmp/c")
			l.WarnfAlways("careful")

			assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("[info] loaded 2 projects")))
			assert.Equal(t, tt.wantDebug, bytes.Contains(out.Bytes(), []byte("[debug] config dir /tmp/c")))
			assert.Contains(t, errOut.String(), "[warn] careful")
		})
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Debug: true, Out: &bytes.Buffer{}, Err: &errOut}

	err := l.ErrorfAndReturn("failed to read %s: %w", "globals.yml", fs.ErrNotExist)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, errOut.String(), "failed to read globals.yml")
}
