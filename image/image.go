// Package image reads memory images: whitespace separated hexadecimal
// words, each with an optional 'x' or '0x' prefix, placed into consecutive
// memory cells starting at index 0.
package image

import (
	"bufio"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

// Image is a parsed memory image.
type Image struct {
	Words []uint16 // Words, in load order.
}

// parseWord parses a single hex token.
func parseWord(token string) (value uint16, err error) {
	digits := token
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	case strings.HasPrefix(digits, "x"), strings.HasPrefix(digits, "X"):
		digits = digits[1:]
	}

	value64, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return
	}

	value = uint16(value64)
	return
}

// Unmarshal parses an image from a reader, replacing any existing words.
// On error the existing words are left untouched.
func (img *Image) Unmarshal(file io.Reader) (err error) {
	var words []uint16

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		token := scanner.Text()
		value, perr := parseWord(token)
		if perr != nil {
			err = &ErrMalformedImage{Index: len(words), Token: token, Err: perr}
			return
		}
		words = append(words, value)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	img.Words = words

	return
}

// Commit copies the image into memory. Nothing is written unless the whole
// image fits. Cells past the end of the image are left unchanged.
func (img *Image) Commit(memory []uint16) (err error) {
	if len(img.Words) > len(memory) {
		err = &ErrImageTooLarge{Words: len(img.Words), Size: len(memory)}
		return
	}

	copy(memory, img.Words)

	return
}

// Open reads and parses the named image from a file system.
func Open(filesys fs.FS, name string) (img *Image, err error) {
	file, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	img = &Image{}
	err = img.Unmarshal(file)
	if err != nil {
		img = nil
		return
	}

	return
}

// Load reads the named image from a file system and commits it to memory.
// Memory is unchanged on any error.
func Load(memory []uint16, filesys fs.FS, name string) (words int, err error) {
	img, err := Open(filesys, name)
	if err != nil {
		return
	}

	err = img.Commit(memory)
	if err != nil {
		return
	}

	words = len(img.Words)
	return
}
