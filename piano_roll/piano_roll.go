// This defines a command-line utility that draws the notes in a MIDI file as
// a piano roll, saved as a series of numbered BMP frames.
//
// Usage: piano_roll [-w width] [-d step] [-s scale] [-h height]
// [-config file.json] input.mid output_%d.bmp
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yalue/midinotes"
	"github.com/yalue/midinotes/pianoroll"
)

// Fills in the options from a JSON config file. Only options whose flags
// weren't given on the command line are changed.
func loadJSONConfig(path string, setFlags map[string]bool,
	opts *pianoroll.Options) error {
	data, e := os.ReadFile(path)
	if e != nil {
		return errors.Wrap(e, "failed reading config")
	}
	var cfg struct {
		FrameWidth *uint32 `json:"frame_width"`
		Step       *uint32 `json:"step"`
		Scale      *uint32 `json:"scale"`
		NoteHeight *uint32 `json:"note_height"`
	}
	e = json.Unmarshal(data, &cfg)
	if e != nil {
		return errors.Wrapf(e, "failed parsing %s", path)
	}
	if cfg.FrameWidth != nil && !setFlags["w"] {
		opts.FrameWidth = *cfg.FrameWidth
	}
	if cfg.Step != nil && !setFlags["d"] {
		opts.Step = *cfg.Step
	}
	if cfg.Scale != nil && !setFlags["s"] {
		opts.Scale = *cfg.Scale
	}
	if cfg.NoteHeight != nil && !setFlags["h"] {
		opts.NoteHeight = *cfg.NoteHeight
	}
	return nil
}

// Holds the values of the numeric flags. They are parsed as uint, which is
// wider than the options' uint32 fields on 64-bit systems.
type sizeFlags struct {
	frameWidth, step, scale, height uint
}

// Copies the flag values into opts. Returns an error naming the flag if any
// value doesn't fit in a uint32.
func (f *sizeFlags) apply(opts *pianoroll.Options) error {
	values := []struct {
		name  string
		value uint
		dst   *uint32
	}{
		{"w", f.frameWidth, &opts.FrameWidth},
		{"d", f.step, &opts.Step},
		{"s", f.scale, &opts.Scale},
		{"h", f.height, &opts.NoteHeight},
	}
	for _, v := range values {
		if uint64(v.value) > math.MaxUint32 {
			return errors.Errorf("-%s must be at most %d, got %d", v.name,
				uint64(math.MaxUint32), uint64(v.value))
		}
		*v.dst = uint32(v.value)
	}
	return nil
}

func renderFile(inputFile, pattern string, opts pianoroll.Options,
	log logrus.FieldLogger) (int, error) {
	f, e := os.Open(inputFile)
	if e != nil {
		return 0, errors.Wrap(e, "failed opening input")
	}
	defer f.Close()
	notes, e := midinotes.ReadNotes(f, midinotes.WithLogger(log))
	if e != nil {
		return 0, errors.Wrapf(e, "failed reading notes from %s", inputFile)
	}
	log.Debugf("Read %d notes", len(notes))
	roll, e := pianoroll.Render(notes, opts)
	if e != nil {
		return 0, e
	}
	return pianoroll.SaveFrames(roll, pattern, opts, log)
}

func run() int {
	opts := pianoroll.DefaultOptions()
	var configPath string
	var debug bool
	var sizes sizeFlags
	flag.UintVar(&sizes.frameWidth, "w", uint(opts.FrameWidth), "The width "+
		"of each frame, in pixels. 0 renders a single frame.")
	flag.UintVar(&sizes.step, "d", uint(opts.Step), "The number of pixels "+
		"between the starts of consecutive frames.")
	flag.UintVar(&sizes.scale, "s", uint(opts.Scale), "The number of ticks "+
		"per pixel.")
	flag.UintVar(&sizes.height, "h", uint(opts.NoteHeight), "The height of "+
		"each key's row, in pixels.")
	flag.StringVar(&configPath, "config", "", "A JSON file with default "+
		"values for frame_width, step, scale and note_height.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Printf("Usage: %s [options] <input .mid file> <output pattern "+
			"containing %%d>\nRun with -help for more information.\n",
			os.Args[0])
		return 1
	}
	log := logrus.StandardLogger()
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if e := sizes.apply(&opts); e != nil {
		log.Errorf("Invalid arguments: %s", e)
		return 1
	}
	if configPath != "" {
		setFlags := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
		e := loadJSONConfig(configPath, setFlags, &opts)
		if e != nil {
			log.Errorf("Couldn't load config %s: %s", configPath, e)
			return 1
		}
	}
	inputFile, pattern := flag.Arg(0), flag.Arg(1)
	fileLog := log.WithField("file", inputFile)
	count, e := renderFile(inputFile, pattern, opts, fileLog)
	if e != nil {
		fileLog.Errorf("Failed rendering piano roll: %s", e)
		return 1
	}
	fileLog.Infof("Rendered %d frame(s)", count)
	return 0
}

func main() {
	os.Exit(run())
}
