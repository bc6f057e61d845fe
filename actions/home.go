package actions

import (
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/openinsure/custody-api/domain"
)

// HomeHandler is a default handler to serve up
// a home page.
func HomeHandler(c buffalo.Context) error {
	message := fmt.Sprintf("Welcome to the %s API", domain.Env.AppName)
	return renderOk(c, map[string]string{"message": message})
}

// swagger:operation GET /status Status Status
//
// Status
//
// checks the app status
//
// ---
// responses:
//   '204':
//     description: app status is good
func statusHandler(c buffalo.Context) error {
	return c.Render(http.StatusNoContent, nil)
}
