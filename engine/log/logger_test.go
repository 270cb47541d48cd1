package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSinkAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	logger := New("logtest")
	SetLevel(Info)
	logger.Infof("window %dx%d", 800, 600)
	out := buf.String()
	if !strings.Contains(out, "[logtest]") || !strings.Contains(out, "window 800x600") {
		t.Fatalf("expected module tag and message in %q", out)
	}

	buf.Reset()
	SetLevel(Warning)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warning level; got %q", buf.String())
	}

	SetModuleLevel("logtest", Debug)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected the module override to let debug through; got %q", buf.String())
	}
}
