// This defines a command-line utility for gathering information about
// instruments used by MIDI files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yalue/midinotes"
)

// Notes on this channel (channel 10, counting from 1) are percussion; the note
// number selects the drum rather than the pitch.
const percussionChannel = 9

// Keeps track of our accumulated note count for each instrument.
type instrumentStats struct {
	// One value per MIDI instrument: the number of notes played with it.
	noteCounts [128]uint64
	// One value per MIDI percussion instrument: the number of notes played
	// with that key on the percussion channel.
	percussionNoteCounts [128]uint64
	// The total number of ticks each instrument was sounding.
	ticks [128]uint64
	files int
}

// Adds the notes to the running totals.
func (s *instrumentStats) addNotes(notes []midinotes.Note) {
	for _, n := range notes {
		if n.Channel == percussionChannel {
			s.percussionNoteCounts[n.Number&0x7f]++
			continue
		}
		s.noteCounts[n.Instrument&0x7f]++
		s.ticks[n.Instrument&0x7f] += uint64(n.Duration)
	}
}

// Adds the notes in the named MIDI file to the running totals.
func (s *instrumentStats) addFile(name string, log logrus.FieldLogger) error {
	f, e := os.Open(name)
	if e != nil {
		return errors.Wrapf(e, "failed opening %s", name)
	}
	defer f.Close()
	notes, e := midinotes.ReadNotes(f, midinotes.WithLogger(log))
	if e != nil {
		return errors.Wrapf(e, "failed parsing %s", name)
	}
	s.addNotes(notes)
	s.files++
	return nil
}

// Writes the totals for every instrument that was used.
func (s *instrumentStats) printInfo(w io.Writer) {
	fmt.Fprintf(w, "Notes from %d file(s):\n", s.files)
	for i := 0; i < 128; i++ {
		if s.noteCounts[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "Instrument %d: %d notes, %d ticks.\n", i,
			s.noteCounts[i], s.ticks[i])
	}
	for i := 0; i < 128; i++ {
		if s.percussionNoteCounts[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "Percussion instrument %d: %d notes.\n", i,
			s.percussionNoteCounts[i])
	}
}

func run() int {
	var baseDir string
	var debug bool
	flag.StringVar(&baseDir, "dir", "", "The directory to scan for .mid files")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.Parse()
	if baseDir == "" {
		fmt.Println("A base directory must be specified. " +
			"Run with -help for usage.")
		return 1
	}
	log := logrus.StandardLogger()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	filenames, e := filepath.Glob(filepath.Join(baseDir, "*.mid"))
	if e != nil {
		log.Errorf("Failed looking up MIDI files in dir %s: %s", baseDir, e)
		return 1
	}
	if len(filenames) <= 0 {
		log.Errorf("Didn't find any MIDI (.mid) files in dir %s.", baseDir)
		return 1
	}
	stats := &instrumentStats{}
	for i, name := range filenames {
		fileLog := log.WithField("file", name)
		fileLog.Infof("Scanning file %d/%d", i+1, len(filenames))
		e = stats.addFile(name, fileLog)
		if e != nil {
			fileLog.Warnf("Failed analyzing file: %s", e)
		}
	}
	stats.printInfo(os.Stdout)
	return 0
}

func main() {
	os.Exit(run())
}
