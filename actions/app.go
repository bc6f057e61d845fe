package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/log"
	"github.com/openinsure/custody-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo should be defined.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env:  domain.Env.GoEnv,
			Addr: fmt.Sprintf("0.0.0.0:%d", domain.Env.ServerPort),
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_custody_api_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		registerCustomErrorHandler(app)

		app.Use(log.SentryMiddleware)

		// Log request parameters (filters apply).
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction. Every handler's reads and
		// writes commit or roll back together.
		app.Use(popmw.Transaction(models.DB))

		app.GET("/", HomeHandler)
		app.GET("/status", statusHandler)
		app.Middleware.Skip(AuthN, HomeHandler, statusHandler)

		app.Use(AuthN)

		// policies
		policiesGroup := app.Group("/policies")
		policiesGroup.GET("/", policiesList)
		policiesGroup.POST("/", policiesCreate)
		policiesGroup.GET("/{id}", policiesView)
		policiesGroup.GET("/{id}/claims", policiesClaimsList)
		policiesGroup.POST("/{id}/claims", policiesClaimsCreate)

		// claims
		claimsGroup := app.Group("/claims")
		claimsGroup.GET("/", claimsList)
		claimsGroup.GET("/{id}", claimsView)
		claimsGroup.POST("/{id}/review", claimsReview)
		claimsGroup.POST("/{id}/pay", claimsPay)

		// custody
		custodyGroup := app.Group("/custody")
		custodyGroup.GET("/", custodyView)
		custodyGroup.GET("/ledger", custodyLedger)
		custodyGroup.POST("/fund", custodyFund)
	}

	return app
}
