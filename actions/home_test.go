package actions

import (
	"net/http"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "Welcome")
}

func (as *ActionSuite) Test_StatusHandler() {
	res := as.JSON("/status").Get()
	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_AuthN() {
	// no token
	res := as.JSON("/policies").Get()
	as.Equal(http.StatusUnauthorized, res.Code)
	as.Contains(res.Body.String(), "ErrorMissingAuthIdentity")

	// malformed token
	req := as.JSON("/policies")
	req.Headers["Authorization"] = "Bearer not-an-identity"
	res = req.Get()
	as.Equal(http.StatusUnauthorized, res.Code)
	as.Contains(res.Body.String(), "ErrorInvalidAuthIdentity")
}
