package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"trip-itinerary-service/internal/platform/logger"
)

func writeJSON(log *logger.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(log *logger.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(log, w, r, status, map[string]string{"error": msg})
}

// decodeBody parses exactly one strict JSON object from the request body.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errExtraBody
	}
	return nil
}

type bodyError string

func (e bodyError) Error() string { return string(e) }

const errExtraBody = bodyError("body must contain only one JSON object")
