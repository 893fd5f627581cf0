package types

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Response is the internal service result envelope. Services return it,
// the response middleware serializes it.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   error  `json:"-"`
}

// ResponseAPI is the wire shape written to clients.
type ResponseAPI struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Notice is a transient user-facing message (coupon failures, processor
// errors). Notices ride alongside Data so the client can render toasts
// without inspecting the generic error path.
type Notice struct {
	Kind    string `json:"kind"` // "error" | "warning" | "success"
	Message string `json:"message"`
	Persist bool   `json:"persist,omitempty"` // survive the next navigation
}

func ValidateStringToBool(fl validator.FieldLevel) bool {
	_, err := strconv.ParseBool(fl.Field().String())
	return err == nil
}
