package image

import (
	"github.com/ezrec/lc3/translate"
)

var f = translate.From

// ErrMalformedImage is a token that is not a 16-bit hex word.
type ErrMalformedImage struct {
	Index int    // Word index of the token.
	Token string // Offending token.
	Err   error  // Parse error, if any.
}

func (err *ErrMalformedImage) Error() string {
	return f("word %d: malformed token %q", err.Index, err.Token)
}

func (err *ErrMalformedImage) Unwrap() error {
	return err.Err
}

// ErrImageTooLarge is an image with more words than memory.
type ErrImageTooLarge struct {
	Words int // Words in the image.
	Size  int // Words in memory.
}

func (err *ErrImageTooLarge) Error() string {
	return f("image of %d words exceeds memory of %d words", err.Words, err.Size)
}
