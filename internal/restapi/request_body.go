package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes bounds request bodies; drafts are a few hundred bytes.
const maxBodyBytes = 64 << 10

// bodyError is a request body that could not be decoded.
type bodyError struct {
	msg string
}

func (e *bodyError) Error() string { return e.msg }

// readJSON decodes a single JSON object from the request body into dst.
func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return &bodyError{fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)}
		case errors.Is(err, io.ErrUnexpectedEOF):
			return &bodyError{"body contains badly-formed JSON"}
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return &bodyError{fmt.Sprintf("body contains incorrect JSON type for field %q", typeError.Field)}
			}
			return &bodyError{fmt.Sprintf("body contains incorrect JSON type (at character %d)", typeError.Offset)}
		case errors.Is(err, io.EOF):
			return &bodyError{"body must not be empty"}
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return &bodyError{fmt.Sprintf("body contains unknown field %s", field)}
		case errors.As(err, &maxBytesError):
			return &bodyError{fmt.Sprintf("body must not be larger than %d bytes", maxBytesError.Limit)}
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &bodyError{"body must only contain a single JSON value"}
	}
	return nil
}
