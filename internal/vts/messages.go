// Package vts provides a client for the puppeteer's JSON WebSocket API
package vts

import "encoding/json"

// Wire shapes. Field names are part of the remote's contract and must
// match its JSON exactly.

// Request is the envelope for outgoing frames.
type Request struct {
	APIName     string `json:"apiName"`
	APIVersion  string `json:"apiVersion"`
	RequestID   string `json:"requestID"`
	MessageType string `json:"messageType"`
	Data        any    `json:"data"`
}

// Response is the envelope for incoming frames; data stays raw until the
// flow knows which shape to decode.
type Response struct {
	APIName     string          `json:"apiName"`
	APIVersion  string          `json:"apiVersion"`
	RequestID   string          `json:"requestID"`
	MessageType string          `json:"messageType"`
	Data        json.RawMessage `json:"data"`
}

// AuthRequestData asks the remote to validate a previously issued token.
type AuthRequestData struct {
	PluginName          string `json:"pluginName"`
	PluginDeveloper     string `json:"pluginDeveloper"`
	AuthenticationToken string `json:"authenticationToken"`
}

// AuthResponseData is the remote's verdict. Reason is optional and only
// set on rejection.
type AuthResponseData struct {
	Authenticated bool   `json:"authenticated"`
	Reason        string `json:"reason,omitempty"`
}

// TokenRequestData triggers the remote's user-approval prompt. Icon and
// website are sent empty but must be present on the wire.
type TokenRequestData struct {
	PluginName      string `json:"pluginName"`
	PluginDeveloper string `json:"pluginDeveloper"`
	PluginIcon      string `json:"pluginIcon"`
	PluginWebsite   string `json:"pluginWebsite"`
}

// TokenResponseData carries the issued token; absent on denial.
type TokenResponseData struct {
	AuthenticationToken string `json:"authenticationToken"`
}

// ParameterValuesData injects parameter samples into the running model.
type ParameterValuesData struct {
	ParameterValues []ParameterValue `json:"parameterValues"`
}

// ParameterValue is one parameter sample.
type ParameterValue struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}
