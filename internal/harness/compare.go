package harness

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

const compareChunk = 64 * 1024

// Comparison is the outcome of a byte-level file comparison.
type Comparison struct {
	Identical bool `json:"identical"`

	// Offset is the first differing byte, or -1 when the files are
	// identical. When one file is a prefix of the other, Offset is the
	// length of the shorter file.
	Offset int64 `json:"offset"`

	ReferenceSize int64 `json:"reference_size"`
	CandidateSize int64 `json:"candidate_size"`
}

// CompareFiles compares two files byte for byte. Contents are always read;
// equal sizes or timestamps are never taken as proof of equality.
func CompareFiles(reference, candidate string) (Comparison, error) {
	cmp := Comparison{Offset: -1}

	ra, err := os.Open(reference)
	if err != nil {
		return cmp, fmt.Errorf("failed to open reference output: %w", err)
	}
	defer ra.Close()

	rb, err := os.Open(candidate)
	if err != nil {
		return cmp, fmt.Errorf("failed to open candidate output: %w", err)
	}
	defer rb.Close()

	offset, sizeA, sizeB, err := compareReaders(bufio.NewReader(ra), bufio.NewReader(rb))
	if err != nil {
		return cmp, err
	}

	cmp.ReferenceSize = sizeA
	cmp.CandidateSize = sizeB
	cmp.Offset = offset
	cmp.Identical = offset < 0
	return cmp, nil
}

// compareReaders streams both readers to EOF. It returns the first differing
// offset (-1 if none) and the total number of bytes in each stream.
func compareReaders(a, b io.Reader) (int64, int64, int64, error) {
	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	var offset int64 = -1
	var sizeA, sizeB int64

	for {
		na, errA := io.ReadFull(a, bufA)
		nb, errB := io.ReadFull(b, bufB)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return -1, 0, 0, fmt.Errorf("failed to read reference output: %w", errA)
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return -1, 0, 0, fmt.Errorf("failed to read candidate output: %w", errB)
		}

		if offset < 0 {
			if i := firstDiff(bufA[:na], bufB[:nb]); i >= 0 {
				offset = sizeA + int64(i)
			}
		}
		sizeA += int64(na)
		sizeB += int64(nb)

		if na < compareChunk && nb < compareChunk {
			return offset, sizeA, sizeB, nil
		}
	}
}

// firstDiff returns the index of the first differing byte, or -1 if a and b
// are equal. A length mismatch differs at the shorter length.
func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
