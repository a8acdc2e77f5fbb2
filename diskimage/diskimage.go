// Package diskimage patches MIDI files stored on FAT-formatted disk
// images, such as dumps of the SD cards and floppies that hardware
// sequencers record to. The image is modified in place through the
// filesystem layer of [github.com/diskfs/go-diskfs], so only the
// clusters holding each file's length field change.
package diskimage

import (
	"fmt"
	"os"
	"path"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/rabidaudio/midifix"
)

// Image is an opened disk image. Be sure to Close() the Image after
// use so the backing file is released.
type Image struct {
	Path string
	fs   filesystem.FileSystem
	disk *disk.Disk
}

// Open opens the image at path read-write and locates its filesystem:
// the first MBR partition if the image is partitioned, otherwise the
// whole disk.
func Open(imgpath string) (*Image, error) {
	dsk, err := diskfs.Open(imgpath)
	if err != nil {
		return nil, err
	}
	fs, err := dsk.GetFilesystem(1)
	if err != nil {
		fs, err = dsk.GetFilesystem(0)
	}
	if err != nil {
		dsk.Close()
		return nil, fmt.Errorf("no filesystem in %v: %w", imgpath, err)
	}
	return &Image{Path: imgpath, fs: fs, disk: dsk}, nil
}

// Patch corrects the length field of every candidate file in the given
// directory of the image ("/" for the root). The Patcher's Filter and
// DryRun settings apply; Backup does not, since FAT media is usually
// close to full and a failed backup copy would leave the batch half
// done.
//
// File sizes come from the FAT directory entries, the same value the
// sequencer's own loader will trust.
func (img *Image) Patch(p *midifix.Patcher, dir string) (midifix.Report, error) {
	infos, err := img.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	report := make(midifix.Report, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !midifix.IsCandidate(info.Name(), p.Filter) {
			continue
		}
		report = append(report, img.patchFile(p, path.Join(dir, info.Name()), info.Size()))
	}
	return report, nil
}

func (img *Image) patchFile(p *midifix.Patcher, fpath string, size int64) midifix.Result {
	name := path.Base(fpath)
	if _, err := midifix.TrackLength(size); err != nil || p.DryRun {
		// nothing will be written, so don't open the file
		return p.Patch(name, size, nil)
	}
	f, err := img.fs.OpenFile(fpath, os.O_RDWR)
	if err != nil {
		return midifix.Result{Name: name, FileSize: size, Err: fmt.Errorf("open %v: %w", fpath, err)}
	}
	res := p.Patch(name, size, f)
	if cerr := f.Close(); cerr != nil && res.Err == nil {
		res.Err = cerr
		res.Patched = false
	}
	return res
}

// Close releases the backing image file. Patched data is flushed as it
// is written, so Close is only cleanup.
func (img *Image) Close() error {
	return img.disk.Close()
}
