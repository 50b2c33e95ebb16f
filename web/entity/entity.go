// Package entity defines the response envelopes used by the web layer of
// the MedTrack panel.
package entity

// Msg is the JSON envelope returned to machine callers (AJAX requests and
// the API-mode auth gate).
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}
