// This defines a command-line utility for repairing the track-length
// field of single-track MIDI files, either loose in a directory or on
// a FAT disk image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rabidaudio/midifix"
	"github.com/rabidaudio/midifix/diskimage"
)

func run() int {
	var dir, image, filter string
	var dryRun, backup, verbose bool
	flag.StringVar(&dir, "dir", ".", "The directory to scan for MIDI files.")
	flag.StringVar(&image, "image", "", "Patch files on a FAT disk image "+
		"instead of a directory.")
	flag.StringVar(&filter, "filter", midifix.DefaultFilter, "Substring a "+
		"file name must contain to be patched (case-sensitive).")
	flag.BoolVar(&dryRun, "dry-run", false, "Report what would change "+
		"without writing anything.")
	flag.BoolVar(&backup, "backup", false, "Write a .bak copy of each file "+
		"before patching it. Ignored with -image.")
	flag.BoolVar(&verbose, "v", false, "Log debug information to stderr.")
	flag.Parse()

	patcher := midifix.Patcher{
		Filter: filter,
		DryRun: dryRun,
		Backup: backup,
	}
	if verbose {
		patcher.LogMode = midifix.LogModeStdErr
	}

	var report midifix.Report
	var err error
	if image != "" {
		img, e := diskimage.Open(image)
		if e != nil {
			fmt.Fprintf(os.Stderr, "midifix: couldn't open %s: %s\n", image, e)
			return 1
		}
		report, err = img.Patch(&patcher, "/")
		if cerr := img.Close(); err == nil {
			err = cerr
		}
	} else {
		report, err = patcher.PatchDir(dir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "midifix: %s\n", err)
		return 1
	}

	for _, res := range report {
		fmt.Println(res)
	}
	if report.Failed() {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
