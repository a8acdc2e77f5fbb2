// Package midifix repairs the track-length field of single-track
// standard MIDI files (SMF type 0).
//
// Some hardware sequencers write .MID files with a stale or zeroed
// track-chunk length, and hex-editing a file invalidates it too. For a
// type-0 file the correct value is fully determined by the file size:
// everything after the 14-byte MThd chunk and the 8-byte MTrk header is
// event data, so the length is the file size minus 22. midifix rewrites
// the 4-byte big-endian length field in place and touches nothing else.
//
// midifix does not parse or validate the MIDI data itself. Multi-track
// (type 1) files have more than one length field and are out of scope.
package midifix

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogMode configures the destination for debug logs.
type LogMode int

const (
	LogModeSilent LogMode = 0 // disable logs
	LogModeStdErr LogMode = 1 // log to stderr
	LogModeLogger LogMode = 2 // log to the supplied log.Logger instance
)

// Layout of a single-track SMF file. The MThd chunk is 14 bytes, the
// MTrk chunk type is 4, and the length field itself is 4, putting event
// data at byte 22 and the length field at byte 18.
const (
	HeaderSize        = 22 // bytes before event data, length field included
	TrackLengthOffset = 18 // byte offset of the length field
	TrackLengthSize   = 4  // the length field is a big-endian uint32
)

// MaxTrackLength is the largest event-data size representable in the
// length field.
const MaxTrackLength = int64(0xFFFFFFFF)

// TrackLength returns the track-chunk length implied by the size of a
// single-track file. Files shorter than the fixed header, or too large
// for the length to fit in 4 bytes, are rejected rather than wrapped.
func TrackLength(fileSize int64) (uint32, error) {
	data := fileSize - HeaderSize
	if data < 0 {
		return 0, ErrFileTooShort
	}
	if data > MaxTrackLength {
		return 0, ErrTrackTooLong
	}
	return uint32(data), nil
}

// Patcher rewrites track-length fields. The zero value is ready to use
// and patches files matching [DefaultFilter] in place.
//
// Debug logging can be enabled by specifying LogMode. For
// [LogModeLogger], supply a [log.Logger] instance to Logger. The
// per-file [Result] values are the user-facing output; logs only trace
// what was examined and skipped.
type Patcher struct {
	Filter  string      // candidate substring, [DefaultFilter] if empty
	DryRun  bool        // compute and report, but write nothing
	Backup  bool        // copy <name>.bak beside each file before writing
	LogMode LogMode     // direct the library logs
	Logger  *log.Logger // if LogMode == LogModeLogger, the log.Logger to use
}

// Patch corrects the length field of an already-open file of the given
// size. It seeks to the absolute field offset, so the current position
// of f does not matter. name is used only for reporting. This is the
// entry point for backends other than the OS filesystem; most callers
// want [Patcher.PatchFile] or [Patcher.PatchDir].
func (p *Patcher) Patch(name string, size int64, f io.WriteSeeker) Result {
	res := Result{Name: name, FileSize: size}
	length, err := TrackLength(size)
	if err != nil {
		res.Err = err
		return res
	}
	res.TrackLength = length
	if p.DryRun {
		p.logf("midifix: dry run: would set %v track length to %v", name, length)
		return res
	}
	if _, err := f.Seek(TrackLengthOffset, io.SeekStart); err != nil {
		res.Err = fmt.Errorf("seek %v: %w", name, err)
		return res
	}
	if err := binary.Write(f, binary.BigEndian, length); err != nil {
		res.Err = fmt.Errorf("write %v: %w", name, err)
		return res
	}
	res.Patched = true
	return res
}

// PatchFile corrects the length field of the file at path. The file
// must be a regular file; its size is read from the filesystem. Any
// failure is recorded on the returned Result rather than returned
// separately, so batch callers can keep going.
func (p *Patcher) PatchFile(path string) Result {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Err: err}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Err: ErrNotRegularFile}
	}

	// validate before opening so a short file is never even opened
	// for writing
	res := Result{Name: name, FileSize: info.Size()}
	res.TrackLength, err = TrackLength(info.Size())
	if err != nil {
		res.Err = err
		return res
	}

	if p.Backup && !p.DryRun {
		if err := copyFile(path, path+".bak"); err != nil {
			res.Err = fmt.Errorf("backup %v: %w", name, err)
			return res
		}
		p.logf("midifix: wrote %v.bak", name)
	}
	if p.DryRun {
		p.logf("midifix: dry run: would set %v track length to %v", name, res.TrackLength)
		return res
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		res.Err = err
		return res
	}
	res = p.Patch(name, info.Size(), f)
	if cerr := f.Close(); cerr != nil && res.Err == nil {
		res.Err = cerr
		res.Patched = false
	}
	return res
}

// PatchDir scans dir (non-recursively) for candidate files and patches
// each in turn. A file that fails is recorded in the Report and does
// not stop the batch; the returned error covers only the directory
// listing itself.
func (p *Patcher) PatchDir(dir string) (Report, error) {
	names, err := Candidates(dir, p.Filter)
	if err != nil {
		return nil, err
	}
	p.logf("midifix: %v candidate(s) in %v", len(names), dir)
	report := make(Report, 0, len(names))
	for _, name := range names {
		res := p.PatchFile(filepath.Join(dir, name))
		if res.Err != nil {
			p.logf("midifix: %v: %v", name, res.Err)
		}
		report = append(report, res)
	}
	return report, nil
}

func (p *Patcher) logf(format string, args ...any) {
	switch p.LogMode {
	case LogModeStdErr:
		log.Printf(format, args...)
	case LogModeLogger:
		if p.Logger != nil {
			p.Logger.Printf(format, args...)
		}
	}
}

func copyFile(srcpath, dstpath string) (err error) {
	r, err := os.Open(srcpath)
	if err != nil {
		return err
	}
	defer r.Close() // ignore error: file was opened read-only.

	w, err := os.Create(dstpath)
	if err != nil {
		return err
	}

	defer func() {
		if c := w.Close(); err == nil {
			err = c
		}
	}()

	_, err = io.Copy(w, r)
	return err
}
