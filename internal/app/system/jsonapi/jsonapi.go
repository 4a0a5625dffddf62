// Package jsonapi writes the uniform response envelope used by every API
// endpoint:
//
//	{ "success": true|false, "data"?: ..., "message"?: string,
//	  "count"?: number, "total"?: number }
//
// Use these helpers instead of raw json.NewEncoder in handlers so the
// Content-Type header and envelope shape stay consistent.
package jsonapi

import (
	"encoding/json"
	"net/http"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Kind    string `json:"kind,omitempty"` // error kind; empty on success
}

func write(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope carrying the created document.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Message writes a 200 success envelope with a message and no data,
// used for delete acknowledgements.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

// List writes a 200 success envelope for list endpoints. count is the number
// of documents in this page; total is the number matching the filter.
func List(w http.ResponseWriter, data any, count int, total int64) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Total: &total})
}

// Fail writes a failure envelope for the given kind with the message as
// detail.
func Fail(w http.ResponseWriter, kind apierr.Kind, msg string) {
	write(w, apierr.Status(kind), Envelope{Success: false, Message: msg, Kind: string(kind)})
}

// Error classifies err via apierr.KindOf and writes the matching failure
// envelope.
func Error(w http.ResponseWriter, err error) {
	Fail(w, apierr.KindOf(err), err.Error())
}
