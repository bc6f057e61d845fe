package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/models"
)

// AuthN resolves the caller's identity from the bearer token. The token IS
// the identity; callers are trusted to present their own address and all
// authorization decisions happen in the models layer against it.
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorMissingAuthIdentity, api.CategoryUnauthorized))
		}

		identity := api.Identity(bearerToken).Canonical()
		if !identity.IsValid() {
			err := errors.New("bearer token is not a valid identity")
			return reportError(c, api.NewAppError(err, api.ErrorInvalidAuthIdentity, api.CategoryUnauthorized))
		}

		actor := models.NewActor(identity)
		c.Set(domain.ContextKeyCurrentActor, actor)

		newExtra(c, "actor", actor.Identity)
		newExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}
