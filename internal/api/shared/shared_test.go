package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, NewRequestID())

	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, body map[string]any)
	}{
		{
			name: "object with numbers",
			body: `{"gender": 1, "client_ids": [1, 2]}`,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, json.Number("1"), body["gender"])
				assert.Equal(t, []any{json.Number("1"), json.Number("2")}, body["client_ids"])
			},
		},
		{
			name: "null",
			body: `null`,
			check: func(t *testing.T, body map[string]any) {
				assert.Nil(t, body)
			},
		},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"a":`, wantErr: true},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "trailing data", body: `{} {}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/method", strings.NewReader(tc.body))

			body, err := DecodeBody(req)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, body)
		})
	}
}

func TestRespondWithEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  any
		expected string
	}{
		{"success", http.StatusOK, map[string]any{"score": 42}, `{"response":{"score":42},"code":200}`},
		{"success without payload", http.StatusOK, nil, `{"response":null,"code":200}`},
		{"validation message", http.StatusUnprocessableEntity, "field 'login' is required", `{"error":"field 'login' is required","code":422}`},
		{"default invalid request", http.StatusUnprocessableEntity, nil, `{"error":"Invalid Request","code":422}`},
		{"default forbidden", http.StatusForbidden, nil, `{"error":"Forbidden","code":403}`},
		{"default bad request", http.StatusBadRequest, "", `{"error":"Bad Request","code":400}`},
		{"default not found", http.StatusNotFound, nil, `{"error":"Not Found","code":404}`},
		{"default internal", http.StatusInternalServerError, nil, `{"error":"Internal Server Error","code":500}`},
		{"other status", http.StatusMethodNotAllowed, nil, `{"error":"Method Not Allowed","code":405}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/method", nil)
			w := httptest.NewRecorder()

			RespondWithEnvelope(w, req, tc.status, tc.payload)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expected, w.Body.String())
		})
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Invalid Request", ErrorText(http.StatusUnprocessableEntity))
	assert.Equal(t, "Unknown Error", ErrorText(599))
}
