// The pianoroll package draws notes as a piano roll: one row band per key,
// time running left to right. The roll can be cut into fixed-width frames
// and saved as a numbered series of BMP images.
package pianoroll

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yalue/midinotes"
	"golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
)

var (
	// Returned when there is nothing to draw.
	ErrEmptyRoll = errors.New("piano roll has no width")
	// Returned when Options contains a zero scale, note height or step.
	ErrBadOptions = errors.New("invalid piano roll options")
	// Returned when a file name pattern doesn't contain "%d".
	ErrBadPattern = errors.New("frame name pattern must contain %d")
	// Returned when the roll would have more than MaxPixels pixels.
	ErrRollTooLarge = errors.New("piano roll is too large")
)

// The largest number of pixels Render will allocate: 256 MiB of RGBA data.
const MaxPixels = 1 << 26

// Controls how notes are drawn and cut into frames.
type Options struct {
	// The number of ticks per horizontal pixel.
	Scale uint32 `json:"scale"`
	// The number of pixel rows used by each key.
	NoteHeight uint32 `json:"note_height"`
	// The width of each frame, in pixels. 0 means a single frame covering
	// the whole roll.
	FrameWidth uint32 `json:"frame_width"`
	// The number of pixels between the starts of consecutive frames.
	Step uint32 `json:"step"`
	// The colors of the background and of the notes.
	Background color.RGBA `json:"-"`
	Foreground color.RGBA `json:"-"`
}

// Returns the options used when nothing else is specified.
func DefaultOptions() Options {
	return Options{
		Scale:      10,
		NoteHeight: 16,
		FrameWidth: 0,
		Step:       1,
		Background: colornames.Black,
		Foreground: colornames.Cyan,
	}
}

func (o *Options) validate() error {
	if o.Scale == 0 {
		return errors.Wrap(ErrBadOptions, "scale is 0")
	}
	if o.NoteHeight == 0 {
		return errors.Wrap(ErrBadOptions, "note height is 0")
	}
	if o.Step == 0 {
		return errors.Wrap(ErrBadOptions, "step is 0")
	}
	return nil
}

// Draws the notes. The image is as wide as the latest note end divided by the
// scale, and only covers the keys from the lowest to the highest note used,
// with the highest key at the top.
func Render(notes []midinotes.Note, opts Options) (*image.RGBA, error) {
	if e := opts.validate(); e != nil {
		return nil, e
	}
	if len(notes) == 0 {
		return nil, errors.Wrap(ErrEmptyRoll, "no notes")
	}
	extent := midinotes.NoteExtent(notes)
	width := uint64(extent.End) / uint64(opts.Scale)
	if width == 0 {
		return nil, errors.Wrapf(ErrEmptyRoll, "last note ends at tick %d, "+
			"scale is %d", uint64(extent.End), opts.Scale)
	}
	keys := uint64(extent.Highest) - uint64(extent.Lowest) + 1
	height := keys * uint64(opts.NoteHeight)
	if height > MaxPixels || width > MaxPixels/height {
		return nil, errors.Wrapf(ErrRollTooLarge, "%d x %d pixels, with "+
			"the last note ending at tick %d", width, height,
			uint64(extent.End))
	}
	rowHeight := int(opts.NoteHeight)
	roll := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(roll, roll.Bounds(), image.NewUniform(opts.Background),
		image.Point{}, draw.Src)
	fg := image.NewUniform(opts.Foreground)
	for i := range notes {
		n := &notes[i]
		x := int(uint64(n.Start) / uint64(opts.Scale))
		w := int(uint64(n.Duration) / uint64(opts.Scale))
		y := (int(extent.Highest) - int(n.Number)) * rowHeight
		// draw.Draw clips the rectangle to the image bounds.
		r := image.Rect(x, y, x+w, y+rowHeight)
		draw.Draw(roll, r, fg, image.Point{}, draw.Src)
	}
	return roll, nil
}

// Returns windows of the roll frameWidth pixels wide, starting every step
// pixels. A frameWidth of 0 returns the whole roll as a single frame. Returns
// no frames if the roll is narrower than frameWidth.
func Frames(roll *image.RGBA, frameWidth, step int) []*image.RGBA {
	b := roll.Bounds()
	if frameWidth <= 0 {
		frameWidth = b.Dx()
	}
	if step <= 0 {
		step = 1
	}
	var toReturn []*image.RGBA
	for i := 0; i <= b.Dx()-frameWidth; i += step {
		r := image.Rect(b.Min.X+i, b.Min.Y, b.Min.X+i+frameWidth, b.Max.Y)
		toReturn = append(toReturn, roll.SubImage(r).(*image.RGBA))
	}
	return toReturn
}

// Returns pattern with its first "%d" replaced by the 5-digit, zero-padded
// frame number.
func FrameName(pattern string, n int) (string, error) {
	if !strings.Contains(pattern, "%d") {
		return "", errors.Wrapf(ErrBadPattern, "got %q", pattern)
	}
	return strings.Replace(pattern, "%d", fmt.Sprintf("%05d", n), 1), nil
}

func saveBMP(name string, img image.Image) error {
	f, e := os.Create(name)
	if e != nil {
		return errors.Wrap(e, "failed creating frame file")
	}
	e = bmp.Encode(f, img)
	if e != nil {
		f.Close()
		return errors.Wrapf(e, "failed encoding %s", name)
	}
	return f.Close()
}

// Cuts the roll into frames as specified by opts and writes each one to a BMP
// file named by FrameName. Returns the number of frames written.
func SaveFrames(roll *image.RGBA, pattern string, opts Options,
	log logrus.FieldLogger) (int, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if e := opts.validate(); e != nil {
		return 0, e
	}
	if _, e := FrameName(pattern, 0); e != nil {
		return 0, e
	}
	frames := Frames(roll, int(opts.FrameWidth), int(opts.Step))
	for i, frame := range frames {
		name, _ := FrameName(pattern, i)
		if e := saveBMP(name, frame); e != nil {
			return i, errors.Wrapf(e, "failed saving frame %d", i)
		}
		log.WithField("file", name).Infof("Image: %d rendered", i)
	}
	return len(frames), nil
}
