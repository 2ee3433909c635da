package application

import (
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
)

// mapUpstreamError converts upstream client errors into the portal taxonomy:
// API answers surface their message verbatim, network failures get distinct
// connection-error wording.
func mapUpstreamError(err error, service string) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}

	if apiErr, ok := upstream.AsAPIError(err); ok {
		return errors.ErrUpstream(apiErr.Error()).Wrap(err)
	}

	if _, ok := upstream.AsTransportError(err); ok {
		return errors.ErrUpstreamUnavailable(service).Wrap(err)
	}

	return errors.ErrInternal("").Wrap(err)
}
