// Package hexfile loads PIO programs stored as hex text, the format the
// pico-sdk and most dumping tools produce: pairs of hex digits, optionally
// separated by whitespace, holding big-endian 16-bit instruction words.
package hexfile

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"piodisasm/internal/disasm"
)

var (
	// ErrOddLength is returned when the decoded program is not a whole
	// number of 16-bit words.
	ErrOddLength = errors.New("program length % 2 is not 0")
	// ErrInvalidHex is returned for text that is not a hex byte string.
	ErrInvalidHex = errors.New("invalid hex input")
)

// Image is a loaded program.
type Image struct {
	Path  string        // source file, "-" for standard input
	Bytes []byte        // raw program bytes
	Words []disasm.Word // big-endian instruction words
}

// Open loads a hex program from path.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	im, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	im.Path = path
	return im, nil
}

// Read loads a hex program from r.
func Read(r io.Reader) (*Image, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(string(text))
}

// Parse decodes hex text. Whitespace anywhere in the text is ignored. An
// odd byte count is rejected before any word is produced.
func Parse(text string) (*Image, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	words, err := Words(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded hex program", "bytes", len(data), "words", len(words))
	return &Image{Path: "-", Bytes: data, Words: words}, nil
}

// Words splits data into big-endian 16-bit words.
func Words(data []byte) ([]disasm.Word, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w (got %d bytes)", ErrOddLength, len(data))
	}
	words := make([]disasm.Word, 0, len(data)/2)
	for off := 0; off < len(data); off += 2 {
		words = append(words, disasm.Word(binary.BigEndian.Uint16(data[off:])))
	}
	return words, nil
}

// ParseWord parses a single instruction word written in hex, with or
// without a 0x prefix.
func ParseWord(s string) (disasm.Word, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a 16-bit word", ErrInvalidHex, s)
	}
	return disasm.Word(v), nil
}
