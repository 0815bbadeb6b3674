// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

// json behaves like encoding/json, including struct tags and error types.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps every request body.
const maxBodyBytes = 1_048_576

// envelope wraps keyed responses such as {"error": "..."}.
type envelope map[string]any

// unknownFieldMarker precedes the field name in jsoniter's unknown-field error.
const unknownFieldMarker = "found unknown field: "

// errInvalidID is returned by readIDParam when :id cannot name a record.
var errInvalidID = errors.New("invalid id parameter")

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Returns errInvalidID if the value is missing, non-numeric, or less than 1.
func (app *applicationDependencies) readIDParam(r *http.Request) (uint, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseUint(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	// jsoniter only accepts spaces as indentation.
	js, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data).
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if dec.More() {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// decodeError turns a decoder error into a message safe to show clients.
// jsoniter flattens reader errors into its own text, so matching is done on
// the message rather than with errors.As.
func decodeError(err error) error {
	msg := err.Error()

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), strings.Contains(msg, "http: request body too large"):
		return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")
	case strings.Contains(msg, unknownFieldMarker):
		field := msg[strings.Index(msg, unknownFieldMarker)+len(unknownFieldMarker):]
		if i := strings.IndexByte(field, ','); i >= 0 {
			field = field[:i]
		}
		return fmt.Errorf("body contains unknown key %q", field)
	default:
		return errors.New("body contains badly-formed JSON")
	}
}
