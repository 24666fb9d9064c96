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


package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithRetryDelay(time.Millisecond)}, opts...)
	client, err := NewClient(url, "service-key-123", opts...)
	require.NoError(t, err)
	return client
}

func TestInsertRequestShape(t *testing.T) {
	var got *http.Request
	var body []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	rows := []any{map[string]string{"title": "Capital Markets"}}
	require.NoError(t, client.Insert(context.Background(), "topics", rows))

	assert.Equal(t, "/rest/v1/topics", got.URL.Path)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "service-key-123", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "return=minimal", got.Header.Get("Prefer"))
	require.Len(t, body, 1)
	assert.Equal(t, "Capital Markets", body[0]["title"])
}

func TestSelectFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/topics", r.URL.Path)
		assert.Equal(t, "id,title", r.URL.Query().Get("select"))
		assert.Equal(t, "service-key-123", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 42, "title": "Market Structure"}]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	rows, err := client.Select(context.Background(), "topics", "id", "title")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(42), rows[0]["id"])
	assert.Equal(t, "Market Structure", rows[0]["title"])
}

func TestInsertClientErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message": "column does not exist"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	err := client.Insert(context.Background(), "topics", []any{map[string]string{"bad": "row"}})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.Contains(t, statusErr.Body, "column does not exist")
}

func TestInsertRetriesServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	require.NoError(t, client.Insert(context.Background(), "topics", []any{map[string]string{"title": "t"}}))
	assert.Equal(t, 3, calls)
}

func TestInsertRetriesExhausted(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(t, server.URL, WithMaxRetries(2))
	err := client.Insert(context.Background(), "topics", []any{map[string]string{"title": "t"}})
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.Retryable())
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key")
	require.Error(t, err)

	_, err = NewClient("http://localhost", "")
	require.Error(t, err)

	_, err = NewClient("http://localhost", "key", WithMaxRetries(-1))
	require.Error(t, err)
}
