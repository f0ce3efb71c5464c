// Package httpsfn implements the callable-function wire protocol the mobile
// clients already speak: POST {"data": <request>}, success {"result": <...>},
// failure {"error": {"status", "message"}} with a canonical status code.
package httpsfn

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Code is a canonical error status.
type Code string

const (
	InvalidArgument Code = "INVALID_ARGUMENT"
	NotFound        Code = "NOT_FOUND"
	Internal        Code = "INTERNAL"
)

// Error is a caller-visible failure. Message is safe to return to the client;
// provider details stay in the logs.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (c Code) httpStatus() int {
	switch c {
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// DecodeRequest unwraps the callable envelope into req. A body that is not
// valid JSON or lacks the data wrapper is an invalid-argument error.
func DecodeRequest(r *http.Request, req any) error {
	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		return Errorf(InvalidArgument, "request body must be JSON")
	}
	if len(env.Data) == 0 {
		return Errorf(InvalidArgument, "request body must wrap the payload in a data field")
	}
	if err := json.Unmarshal(env.Data, req); err != nil {
		return Errorf(InvalidArgument, "malformed request payload")
	}
	return nil
}

// WriteResult writes the success envelope.
func WriteResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

// WriteError writes the failure envelope. Non-*Error values are masked as
// INTERNAL with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	var fnErr *Error
	if !errors.As(err, &fnErr) {
		fnErr = &Error{Code: Internal, Message: "internal error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(fnErr.Code.httpStatus())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"status":  string(fnErr.Code),
			"message": fnErr.Message,
		},
	})
}
