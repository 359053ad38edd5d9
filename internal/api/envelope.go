package api

import (
	"bytes"
	"encoding/json"
)

// The backend has carried two response conventions over its lifetime:
// raw payloads and a {status, message, data, error} wrapper. The
// wrapper is the canonical one (it is the backend's declared standard
// response schema); raw bodies are tolerated by treating the whole body
// as the payload. This is the only place that decision is made.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// payload returns the effective payload of a response body: the
// envelope's data field when the body is a wrapper object, otherwise
// the body itself.
//
// A "status" key alone does not make a wrapper: domain payloads carry
// their own status fields (a subscription is "active", a query record
// "success"). Only the two values the wrapper schema emits mark the
// body as an envelope.
func payload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if env.Status != "success" && env.Status != "error" {
		return trimmed
	}
	if len(env.Data) == 0 {
		return json.RawMessage("null")
	}
	return env.Data
}

// errorMessage pulls the backend's message out of a failure body.
// FastAPI-era bodies use {"detail": "..."} (sometimes a list of
// validation items), wrapper-era bodies use {"message": "..."}.
// Returns "" when nothing usable is found.
func errorMessage(body []byte) string {
	var failure struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &failure); err != nil {
		return ""
	}
	if len(failure.Detail) > 0 {
		var s string
		if err := json.Unmarshal(failure.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(failure.Detail, &items); err == nil && len(items) > 0 {
			return items[0].Msg
		}
	}
	return failure.Message
}
