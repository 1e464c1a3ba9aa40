// Package loader reads memory image files for the simulator. An image
// is a text file with one 32-bit instruction or data word per line,
// written as hexadecimal, loaded into memory starting at address 0.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxWords is the largest number of words an image may hold, matching
// the simulated memory size.
const MaxWords = 1024

// MalformedImageError reports a line of an image file that could not
// be parsed or an image that exceeds the memory size.
type MalformedImageError struct {
	// Line is the 1-based line number of the offending line.
	Line int

	// Text is the trimmed content of the line, empty when the image as
	// a whole is at fault.
	Text string

	// Reason describes what is wrong.
	Reason string
}

func (e *MalformedImageError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("image line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("image line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Image is a parsed memory image ready to load into the emulator.
type Image struct {
	// Words holds the image contents in address order. The word at
	// index i belongs at byte address i*4.
	Words []uint32
}

// Load reads and parses the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Parse reads an image from r. Each non-blank line holds one word in
// hexadecimal, with or without a 0x prefix. Blank lines are skipped;
// anything else that fails to parse stops the load.
func Parse(r io.Reader) (*Image, error) {
	img := &Image{}
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		word, err := parseWord(text)
		if err != nil {
			return nil, &MalformedImageError{
				Line:   line,
				Text:   text,
				Reason: "not a 32-bit hexadecimal word",
			}
		}

		if len(img.Words) == MaxWords {
			return nil, &MalformedImageError{
				Line:   line,
				Reason: fmt.Sprintf("image exceeds %d words", MaxWords),
			}
		}

		img.Words = append(img.Words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return img, nil
}

func parseWord(text string) (uint32, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(value), nil
}
