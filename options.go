package midinotes

import (
	"github.com/sirupsen/logrus"
)

type options struct {
	log      logrus.FieldLogger
	trailing TrailingNotePolicy
}

// Configures ReadNotes and ReadSMF.
type Option func(*options)

// Sets the logger used while decoding. The default is the logrus standard
// logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Sets what happens to notes still on at the end of a track. The default is
// FlushTrailingNotes.
func WithTrailingNotePolicy(p TrailingNotePolicy) Option {
	return func(o *options) {
		o.trailing = p
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		log:      logrus.StandardLogger(),
		trailing: FlushTrailingNotes,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
