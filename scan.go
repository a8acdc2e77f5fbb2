package midifix

import (
	"os"
	"strings"
)

// DefaultFilter is the substring that marks a file name as a MIDI
// candidate. The match is case-sensitive: sequencers that produced the
// files this tool exists for wrote DOS-style uppercase names, and a
// lowercase .mid file from another tool should not be rewritten on the
// assumption that it has a broken header.
const DefaultFilter = ".MID"

// IsCandidate reports whether a file name selects for patching. filter
// may appear anywhere in the name, not just the extension position, so
// names like SONG.MID.OLD still match. An empty filter means
// [DefaultFilter].
func IsCandidate(name, filter string) bool {
	if filter == "" {
		filter = DefaultFilter
	}
	return strings.Contains(name, filter)
}

// Candidates lists the regular files in dir whose name contains the
// filter substring, in name order. Directories and irregular files are
// never candidates.
func Candidates(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !IsCandidate(entry.Name(), filter) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
