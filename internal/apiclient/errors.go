package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Op names the operation that failed.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport: the request never produced a readable response.
	KindTransport Kind = iota
	// KindStructured: non-2xx with a JSON body.
	KindStructured
	// KindUnstructured: non-2xx with a body that is not JSON (HTML, text, empty).
	KindUnstructured
	// KindDecode: 2xx whose body could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStructured:
		return "structured"
	case KindUnstructured:
		return "unstructured"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MsgServerError is shown for 5xx responses whose body is not JSON.
const MsgServerError = "Server error: the backend failed to process the request."

// Error is returned by every Client operation that does not succeed.
type Error struct {
	Op      Op
	Status  int    // 0 for transport failures
	Kind    Kind
	Message string // "message" field of a structured body, if any
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d (%s body)", e.Op, e.Status, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// errorBody is the structured error contract of the backend.
type errorBody struct {
	Message string `json:"message"`
}

// classify builds the error for a non-2xx response from the status code and
// whether the body parses as JSON. Unparseable bodies are never inspected.
func classify(op Op, status int, body []byte) *Error {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		return &Error{Op: op, Status: status, Kind: KindStructured, Message: strings.TrimSpace(eb.Message)}
	}
	return &Error{Op: op, Status: status, Kind: KindUnstructured}
}

// UserMessage turns err into the single string shown to the user. fallback
// is used when nothing more specific is known.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch apiErr.Kind {
	case KindStructured:
		if apiErr.Message != "" {
			return apiErr.Message
		}
	case KindUnstructured:
		if apiErr.Status >= http.StatusInternalServerError {
			return MsgServerError
		}
		return fmt.Sprintf("Request rejected (HTTP %d).", apiErr.Status)
	}
	return fallback
}
