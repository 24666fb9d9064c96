// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package segment splits document text into overlapping, boundary-aware
// windows sized for downstream processing. Windows prefer to end on a
// sentence or line boundary when one falls past the window midpoint, and
// consecutive windows share a fixed overlap so no context is lost at the
// seams. Every character of the input is covered by at least one window.
package segment

import (
	"errors"
	"strings"
)

const (
	// DefaultWindowSize is the target window length in bytes.
	DefaultWindowSize = 4000

	// DefaultOverlap is the number of bytes shared by consecutive windows.
	DefaultOverlap = 200
)

var (
	// ErrWindowSize is returned when the window size is not positive.
	ErrWindowSize = errors.New("window size must be positive")

	// ErrOverlap is returned when the overlap is negative or not smaller
	// than the window size.
	ErrOverlap = errors.New("overlap must be non-negative and smaller than the window size")
)

// Window is a bounded substring of the source document. Start and End are
// byte offsets into the original text with Text == text[Start:End].
// Windows are ephemeral and never persisted.
type Window struct {
	Index int
	Start int
	End   int
	Text  string
}

// Split partitions text into overlapping windows of at most size bytes.
//
// A cursor advances from 0 to len(text). Each window tentatively ends at
// cursor+size; when that endpoint is not the end of the document, the last
// '.' or '\n' inside the window is used as the true end, provided it falls
// past the window midpoint. The cursor then advances to end-overlap.
func Split(text string, size, overlap int) ([]Window, error) {
	if size <= 0 {
		return nil, ErrWindowSize
	}
	if overlap < 0 || overlap >= size {
		return nil, ErrOverlap
	}

	var windows []Window
	start := 0
	for start < len(text) {
		end := min(start+size, len(text))
		if end < len(text) {
			if bp := breakPoint(text, start, end); bp > start+size/2 {
				end = bp + 1
			}
		}

		windows = append(windows, Window{
			Index: len(windows),
			Start: start,
			End:   end,
			Text:  text[start:end],
		})

		if end >= len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			// Overlap would stall the cursor; give up the shared span
			// rather than loop forever on pathological parameters.
			next = end
		}
		start = next
	}

	return windows, nil
}

// breakPoint returns the offset of the last sentence- or line-terminating
// character in text[start:end], or -1 if none exists.
func breakPoint(text string, start, end int) int {
	window := text[start:end]
	lastPeriod := strings.LastIndexByte(window, '.')
	lastNewline := strings.LastIndexByte(window, '\n')
	bp := max(lastPeriod, lastNewline)
	if bp < 0 {
		return -1
	}
	return start + bp
}
