//go:build profile

package profiler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/hubastard/clayray/engine/log"
)

const (
	defaultCapacity = 1 << 20
	profileName     = "clayray.profile.speedscope.json"
)

var logger = log.New("profiler")

var rec recorder

// Init allocates room for capacity scope events and starts recording.
// Calling it again drops everything captured so far.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	rec.reset(capacity)
	logger.Debugf("recording up to %d scope events", capacity)
}

// Start opens a scope named name and returns the func that closes it.
// Before Init it returns a no-op.
func Start(name string) func() {
	if !rec.ready.Load() {
		return func() {}
	}
	id := rec.names.id(name)
	begin := time.Now().UnixNano()
	rec.push(event{at: begin, name: id, open: true})
	return func() {
		rec.push(event{at: max(time.Now().UnixNano(), begin), name: id})
	}
}

// Dump writes the captured scopes as a speedscope file inside dir and returns its path.
func Dump(dir string) (string, error) {
	doc, err := buildProfile(rec.snapshot(), rec.names.all())
	if err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	path := filepath.Join(dir, profileName)
	if err := writeJSON(path, doc); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	return path, nil
}

// OpenProfilerGraph dumps into the temp dir and launches the speedscope viewer on the result.
func OpenProfilerGraph() (string, error) {
	path, err := Dump(os.TempDir())
	if err != nil {
		return "", err
	}

	cmd := exec.Command("speedscope", path)
	if runtime.GOOS == "windows" {
		if spa, ok := hideWindowAttr().(*syscall.SysProcAttr); ok {
			cmd.SysProcAttr = spa
		}
	}
	if err := cmd.Start(); err != nil {
		return path, fmt.Errorf("profiler: launch speedscope: %w", err)
	}
	return path, nil
}

// Enabled reports whether the binary was built with the profile tag.
func Enabled() bool { return true }
