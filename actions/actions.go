package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo/render"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/log"
)

var r = render.New(render.Options{
	DefaultContentType: "application/json",
})

// reportError logs an error with details and renders the error with buffalo.Render.
func reportError(c buffalo.Context, err error) error {
	var appErr *api.AppError
	if castErr, ok := err.(*api.AppError); ok {
		appErr = castErr
	} else {
		appErr = appErrorFromErr(err)
	}
	appErr.SetHttpStatusFromCategory()
	appErr.LoadMessage()

	appErr.Extras = api.MergeExtras([]map[string]interface{}{getExtras(c), appErr.Extras})
	appErr.Extras["function"] = GetFunctionName(2)
	appErr.Extras["key"] = appErr.Key
	appErr.Extras["status"] = appErr.HttpStatus
	appErr.Extras["method"] = c.Request().Method
	appErr.Extras["URI"] = c.Request().RequestURI
	appErr.Extras["IP"] = c.Request().RemoteAddr

	log.WithContext(c).WithFields(appErr.Extras).Error(appErr.Error())

	// clear out debugging info if not in development or test
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		if appErr.Err != nil {
			appErr.DebugMsg = appErr.Err.Error()
		}
	} else {
		appErr.Extras = map[string]interface{}{}
	}

	return c.Render(appErr.HttpStatus, r.JSON(appErr))
}

func appErrorFromErr(err error) *api.AppError {
	return &api.AppError{
		Err:        err,
		HttpStatus: http.StatusInternalServerError,
		Key:        api.ErrorUnknown,
		Category:   api.CategoryInternal,
		DebugMsg:   err.Error(),
	}
}

// StrictBind hydrates a struct with values from a POST, failing on unknown
// fields so client typos surface as errors rather than silent zero values.
func StrictBind(c buffalo.Context, dest interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return api.NewAppError(err, api.ErrorInvalidRequestBody, api.CategoryUser)
	}
	return nil
}

func getExtras(c buffalo.Context) map[string]interface{} {
	extras, _ := c.Value(domain.ContextKeyExtras).(map[string]interface{})
	if extras == nil {
		extras = map[string]interface{}{}
	}
	return extras
}

func newExtra(c buffalo.Context, key string, e interface{}) {
	extras := getExtras(c)
	extras[key] = e
	c.Set(domain.ContextKeyExtras, extras)
}

// GetFunctionName provides the filename, line number, and function name of the caller, skipping the top `skip`
// functions on the stack.
func GetFunctionName(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	return fmt.Sprintf("%s:%d %s", file, line, fn.Name())
}

func renderOk(c buffalo.Context, v interface{}) error {
	return c.Render(http.StatusOK, r.JSON(v))
}
