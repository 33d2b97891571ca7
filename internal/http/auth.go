package http

import (
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// InjectAuth returns params with authentication applied for template.
// A caller-supplied hapikey is always dropped. In API-key mode the
// configured key is appended unless mode is APIKeyDisabled; in bearer mode
// the token travels in a header and no key is added. Templates containing
// :portal_id receive the configured portal id.
func InjectAuth(template string, params hubspot.Params, cfg *hubspot.Config, mode APIKeyMode) (hubspot.Params, error) {
	out := params.Without(constants.APIKeyParam)

	if cfg.AuthMode() != hubspot.AuthModeBearer {
		err := cfg.Ensure(hubspot.FieldAPIKey)
		if err != nil {
			return nil, err
		}

		if mode != APIKeyDisabled {
			out = out.With(constants.APIKeyParam, hubspot.String(cfg.APIKey))
		}
	}

	if hasPlaceholder(template, constants.PortalIDParam) {
		err := cfg.Ensure(hubspot.FieldPortalID)
		if err != nil {
			return nil, err
		}

		out = out.With(constants.PortalIDParam, hubspot.String(cfg.PortalID))
	}

	return out, nil
}
