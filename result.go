package midifix

import (
	"fmt"
	"strings"
)

// Result records the outcome of patching a single file.
type Result struct {
	Name        string // base name of the file
	FileSize    int64  // size at the time of patching
	TrackLength uint32 // the computed length, if the size was valid
	Patched     bool   // false under DryRun or on error
	Err         error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%v: %v", r.Name, r.Err)
	}
	if !r.Patched {
		return fmt.Sprintf("%v track length should be %v bytes", r.Name, r.TrackLength)
	}
	return fmt.Sprintf("Updated %v track length to %v bytes", r.Name, r.TrackLength)
}

// Report is the outcome of a batch, in candidate order.
type Report []Result

// Failed reports whether any file in the batch failed.
func (r Report) Failed() bool {
	for _, res := range r {
		if res.Err != nil {
			return true
		}
	}
	return false
}

func (r Report) String() string {
	lines := make([]string, len(r))
	for i, res := range r {
		lines[i] = res.String()
	}
	return strings.Join(lines, "\n")
}
