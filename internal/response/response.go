// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Envelope is the body of every API response. Data is null when absent.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// MessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const MessageInternal = "internal server error"

func New[T any](success bool, message string, data T) Envelope[T] {
	return Envelope[T]{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Write encodes env with the given status code.
func Write[T any](w http.ResponseWriter, status int, env Envelope[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// Success writes a successful envelope carrying data.
func Success[T any](w http.ResponseWriter, status int, message string, data T) {
	Write(w, status, New(true, message, data))
}

// Message writes a successful envelope with null data.
func Message(w http.ResponseWriter, status int, message string) {
	Write[any](w, status, New[any](true, message, nil))
}

// Error writes a failed envelope with null data.
func Error(w http.ResponseWriter, status int, message string) {
	Write[any](w, status, New[any](false, message, nil))
}

// ErrorWithData writes a failed envelope carrying details such as field errors.
func ErrorWithData[T any](w http.ResponseWriter, status int, message string, data T) {
	Write(w, status, New(false, message, data))
}
