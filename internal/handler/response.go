package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/forgo/clubhub/api/internal/model"
)

// MaxBodyBytes bounds every request body the API decodes.
const MaxBodyBytes = 1 << 20

// MsgInvalidBody is returned for bodies that are not a JSON object.
const MsgInvalidBody = "Invalid JSON body"

var errInvalidBody = errors.New("request body is not a JSON object")

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a single-key envelope such as {"club": {...}}
func WriteData(w http.ResponseWriter, status int, key string, data any) {
	WriteJSON(w, status, map[string]any{key: data})
}

// WriteMessage writes {"message": "..."}
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError writes {"error": "..."} with the error's status
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeBody reads the request body as a JSON object. An empty body or a
// literal null decodes to an empty map so that validation reports the
// missing fields instead of a parse failure.
func DecodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errInvalidBody
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, errInvalidBody
	}
	if decoder.More() {
		return nil, errInvalidBody
	}

	switch body := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return body, nil
	default:
		return nil, errInvalidBody
	}
}

// readBody decodes the body or writes the 400 response itself.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, err := DecodeBody(w, r)
	if err != nil {
		WriteError(w, model.NewValidationError(MsgInvalidBody))
		return nil, false
	}
	return body, true
}
