// Package vts provides a client for the puppeteer's JSON WebSocket API
package vts

// Protocol identity carried in every request envelope
const (
	APIName    = "VTubeStudioPublicAPI"
	APIVersion = "1.0"
)

// Message types understood by the remote
const (
	TypeAuthentication      = "AuthenticationRequest"
	TypeAuthenticationToken = "AuthenticationTokenRequest"
	TypeParameterValue      = "ParameterValueRequest"
)
