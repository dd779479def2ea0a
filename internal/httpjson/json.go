package httpjson

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1_048_576

// ErrorResponse is the envelope every error response uses: a human-readable
// message, never internal error text.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Write(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

// WriteRaw sends a payload that is already serialized JSON, byte for byte.
// Cache hits use it so repeated reads within a TTL stay identical.
func WriteRaw(w http.ResponseWriter, status int, payload []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err := w.Write(payload)
	return err
}

func Read(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(data)
}

func WriteError(w http.ResponseWriter, status int, message string) error {
	return Write(w, status, ErrorResponse{Error: message})
}
