package handlers

import (
	"encoding/json"
	"net/http"
)

// Client-facing messages. Failures that are not safe to explain collapse
// into the generic ones.
const (
	MsgSignupOK          = "signup successful"
	MsgSignupFailed      = "signup failed, please try again later"
	MsgLoginOK           = "login successful"
	MsgLoginInvalid      = "login failed, please check your login ID and password"
	MsgLoginFailed       = "login failed, please try again later"
	MsgHealthy           = "auth service is running"
	MsgInvalidJSON       = "invalid JSON body"
	MsgValidationFailed  = "validation failed"
	MsgReady             = "ready"
	MsgDatabaseUnhealthy = "database unavailable"
)

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
