package midifix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCandidate(t *testing.T) {
	assert.True(t, IsCandidate("SONG.MID", ""))
	assert.True(t, IsCandidate("SONG.MIDI", ""))
	assert.True(t, IsCandidate("BACKUP.MID.OLD", ""))
	assert.True(t, IsCandidate(".MID", ""))
	assert.False(t, IsCandidate("notes.mid", "")) // case-sensitive
	assert.False(t, IsCandidate("SONG.WAV", ""))
	assert.False(t, IsCandidate("", ""))

	assert.True(t, IsCandidate("notes.mid", ".mid"))
	assert.False(t, IsCandidate("SONG.MID", ".mid"))
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"B.MID", "A.MID", "c.mid", "D.WAV"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0644))
	}
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "DIR.MID"), 0755))

	names, err := Candidates(dir, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"A.MID", "B.MID"}, names)
}

func TestCandidatesMissingDir(t *testing.T) {
	_, err := Candidates(filepath.Join(t.TempDir(), "nope"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
