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


// Package document abstracts where study material comes from.
//
// A Source yields the document as ordered pages of plain text. The
// pipeline never sees file formats; new formats plug in as new Source
// implementations.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyDocument indicates a source yielded no usable text.
var ErrEmptyDocument = errors.New("document contains no text")

// Source yields a document as pages of plain text, in reading order.
type Source interface {
	Pages() ([]string, error)
}

// Text reads all pages from a source and joins them into a single
// string with newline separators.
func Text(src Source) (string, error) {
	pages, err := src.Pages()
	if err != nil {
		return "", err
	}

	joined := strings.TrimSpace(strings.Join(pages, "\n"))
	if joined == "" {
		return "", ErrEmptyDocument
	}
	return joined, nil
}

// FileSource reads a plain-text file. Form feed characters mark page
// boundaries, matching the convention of text produced by PDF
// extraction tools.
type FileSource struct {
	Path string
}

// Pages reads the file and splits it on form feeds. A file without
// form feeds is a single page.
func (s FileSource) Pages() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", s.Path, err)
	}

	raw := strings.Split(string(data), "\f")
	pages := make([]string, 0, len(raw))
	for _, page := range raw {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// StringSource serves in-memory pages. Useful in tests and for callers
// that extract text themselves.
type StringSource []string

// Pages returns the pages as given.
func (s StringSource) Pages() ([]string, error) {
	return s, nil
}
