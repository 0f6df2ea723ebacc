package harness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MaxSize is the largest fixture edge length. TGA stores image dimensions
// in 16 bits.
const MaxSize = 65535

// Output suffixes appended to the fixture name.
const (
	ReferenceSuffix = ".tga"
	CandidateSuffix = ".goblin.tga"
)

// FixtureName returns the fixture file name for a square image of the given
// size: the size zero-padded to three digits with a ".png" suffix.
func FixtureName(size int) string {
	return fmt.Sprintf("%03d.png", size)
}

// ReferencePath returns the reference output path for a fixture.
func ReferencePath(fixture string) string {
	return fixture + ReferenceSuffix
}

// CandidatePath returns the candidate output path for a fixture.
func CandidatePath(fixture string) string {
	return fixture + CandidateSuffix
}

// fixtureExists reports whether the fixture is already on disk.
// Any stat error other than "not exist" is returned.
func fixtureExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ValidateSize checks that size is a usable fixture edge length.
func ValidateSize(size int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("invalid size %d: must be between 1 and %d", size, MaxSize)
	}
	return nil
}
