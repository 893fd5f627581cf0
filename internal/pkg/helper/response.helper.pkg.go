package helper

import (
	"net/http"

	types "storefront-checkout/internal/common/type"
)

// ParseResponse normalizes a service response envelope: fills a default
// message from the status code and flattens the error into the message
// payload so handlers never leak raw error chains to clients.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	return r
}

// ToAPI converts the internal envelope into the wire shape.
func ToAPI(r *types.Response) *types.ResponseAPI {
	api := &types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}
	if r.Error != nil {
		api.Errors = r.Error.Error()
	}
	return api
}
