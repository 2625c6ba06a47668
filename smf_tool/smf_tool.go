// This defines a command-line utility for viewing the events or notes in
// standard MIDI files (SMF, usually with a ".mid" extension).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yalue/midinotes"
)

// Prints every event of every track, with a heading before each track.
type eventDumper struct {
	w       io.Writer
	printer *midinotes.EventPrinter
}

func newEventDumper(w io.Writer) *eventDumper {
	return &eventDumper{
		w:       w,
		printer: midinotes.NewEventPrinter(w, "  "),
	}
}

func (d *eventDumper) StartTrack(index int,
	header midinotes.ChunkHeader) (midinotes.EventReceiver, error) {
	_, e := fmt.Fprintf(d.w, "Track %d (%d bytes):\n", index, header.Length)
	if e != nil {
		return nil, e
	}
	d.printer.Reset()
	return d.printer, nil
}

func (d *eventDumper) EndTrack(index int, eventCount int) error {
	if e := d.printer.Err(); e != nil {
		return errors.Wrap(e, "failed printing events")
	}
	_, e := fmt.Fprintf(d.w, "End of track %d, %d events.\n", index,
		eventCount)
	return e
}

func dumpNotes(w io.Writer, notes []midinotes.Note, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}
	for i, n := range notes {
		_, e := fmt.Fprintf(w, "%d. %s\n", i+1, n)
		if e != nil {
			return e
		}
	}
	extent := midinotes.NoteExtent(notes)
	_, e := fmt.Fprintf(w, "%d notes, from %s to %s, ending at tick %d.\n",
		len(notes), extent.Lowest, extent.Highest, uint64(extent.End))
	return e
}

func run() int {
	var filename string
	var dumpEvents, dumpNotesFlag, asJSON, sortNotes, dropTrailing bool
	var debug bool
	flag.StringVar(&filename, "input_file", "", "The .mid file to open.")
	flag.BoolVar(&dumpEvents, "dump_events", false, "If set, print a list of "+
		"all events in the file to stdout.")
	flag.BoolVar(&dumpNotesFlag, "dump_notes", false, "If set, print the "+
		"notes in the file to stdout.")
	flag.BoolVar(&asJSON, "json", false, "If set, print notes as JSON.")
	flag.BoolVar(&sortNotes, "sort", false, "If set, sort notes by start "+
		"time rather than the order in which they ended.")
	flag.BoolVar(&dropTrailing, "drop_trailing", false, "If set, discard "+
		"notes still on at the end of a track instead of keeping them.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.Parse()
	if filename == "" {
		fmt.Printf("Invalid arguments. Run with -help for more information.\n")
		return 1
	}
	log := logrus.StandardLogger()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	policy := midinotes.FlushTrailingNotes
	if dropTrailing {
		policy = midinotes.DropTrailingNotes
	}
	opts := []midinotes.Option{
		midinotes.WithLogger(log.WithField("file", filename)),
		midinotes.WithTrailingNotePolicy(policy),
	}

	inputFile, e := os.Open(filename)
	if e != nil {
		log.Errorf("Couldn't open %s: %s", filename, e)
		return 1
	}
	defer inputFile.Close()
	if dumpEvents {
		header, e := midinotes.ReadSMF(inputFile, newEventDumper(os.Stdout),
			opts...)
		if e != nil {
			log.Errorf("Couldn't parse %s: %s", filename, e)
			return 1
		}
		fmt.Printf("Parsed %s OK. %s.\n", filename, header)
		if !dumpNotesFlag {
			return 0
		}
		_, e = inputFile.Seek(0, io.SeekStart)
		if e != nil {
			log.Errorf("Couldn't rewind %s: %s", filename, e)
			return 1
		}
	}
	notes, e := midinotes.ReadNotes(inputFile, opts...)
	if e != nil {
		log.Errorf("Couldn't parse %s: %s", filename, e)
		return 1
	}
	if sortNotes {
		midinotes.SortNotes(notes)
	}
	if !dumpNotesFlag {
		fmt.Printf("Parsed %s OK. Contains %d notes.\n", filename, len(notes))
		return 0
	}
	e = dumpNotes(os.Stdout, notes, asJSON)
	if e != nil {
		log.Errorf("Couldn't print notes: %s", e)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
