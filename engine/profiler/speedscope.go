//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"os"
)

var errNoEvents = errors.New("no events to dump")

// Speedscope evented profile, see https://www.speedscope.app/file-format-schema.json
type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// buildProfile converts raw events into a balanced speedscope document.
// Closes that do not match the innermost open scope are dropped, and scopes
// still open at the end are closed at the last timestamp. The ring may have
// overwritten the opening half of a scope, so both cases happen.
func buildProfile(evs []event, scopeNames []string) (ssFile, error) {
	if len(evs) == 0 {
		return ssFile{}, errNoEvents
	}

	base := evs[0].at
	var (
		out   = make([]ssEvent, 0, len(evs))
		stack []int
		last  int64
	)
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.name)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
		}
		out = append(out, ssEvent{Type: kind(e.open), At: at, Frame: e.name})
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(out) == 0 {
		return ssFile{}, errNoEvents
	}

	frames := make([]ssFrame, len(scopeNames))
	for i, name := range scopeNames {
		frames[i] = ssFrame{Name: name}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "clayray (evented)",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "clayray-profiler",
		Name:     "clayray frame capture",
	}, nil
}

func kind(open bool) string {
	if open {
		return "O"
	}
	return "C"
}

// writeJSON writes doc next to path and renames it into place.
func writeJSON(path string, doc any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
