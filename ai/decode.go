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


package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnrecognizedShape indicates a response that could not be reduced to a
// record array by any of the tolerated container shapes.
var ErrUnrecognizedShape = errors.New("unrecognized response shape")

// Shape tags the container form a generation response arrived in.
type Shape int

const (
	// ShapeUnrecognized marks a response no tolerated shape matched.
	ShapeUnrecognized Shape = iota
	// ShapeArray marks a bare JSON array of records.
	ShapeArray
	// ShapeObject marks a JSON object holding the record array under a
	// named field.
	ShapeObject
)

// Payload is the normalized form of a generation response: the container
// shape it arrived in, the field name the records were found under (for
// ShapeObject), and the raw record items.
type Payload struct {
	Shape Shape
	Key   string
	Items []json.RawMessage
}

// Decode normalizes raw response text into a Payload.
//
// Tolerated shapes, tried in order: a bare JSON array; a JSON object with
// the record array under the expected key; a JSON object whose array sits
// under an unexpected key, recovered by scanning all object values for the
// first array of objects carrying the probe field. Code-fence wrappers are
// stripped and common JSON damage is repaired before parsing. Anything
// else returns ErrUnrecognizedShape.
func Decode(raw, key, probe string) (Payload, error) {
	text := RepairJSON(StripFences(raw))

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return Payload{Shape: ShapeArray, Items: items}, nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &object); err != nil {
		return Payload{Shape: ShapeUnrecognized}, fmt.Errorf("%w: %w", ErrUnrecognizedShape, err)
	}

	if field, ok := object[key]; ok {
		if err := json.Unmarshal(field, &items); err == nil {
			return Payload{Shape: ShapeObject, Key: key, Items: items}, nil
		}
	}

	// The model sometimes invents its own field name; take the first
	// array of objects that carries the probe field. Keys are visited in
	// sorted order so recovery is deterministic.
	names := make([]string, 0, len(object))
	for name := range object {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := json.Unmarshal(object[name], &items); err != nil || len(items) == 0 {
			continue
		}
		var first map[string]json.RawMessage
		if err := json.Unmarshal(items[0], &first); err != nil {
			continue
		}
		if _, ok := first[probe]; ok {
			return Payload{Shape: ShapeObject, Key: name, Items: items}, nil
		}
	}

	return Payload{Shape: ShapeUnrecognized}, fmt.Errorf("%w: no %q array found", ErrUnrecognizedShape, key)
}

// DecodeRecords decodes a response into typed records. Items that fail to
// unmarshal are dropped rather than coerced; the caller applies domain
// validation on what remains.
func DecodeRecords[T any](raw, key, probe string) ([]T, error) {
	payload, err := Decode(raw, key, probe)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(payload.Items))
	for _, item := range payload.Items {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// StripFences removes markdown code-fence wrappers from a response.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
