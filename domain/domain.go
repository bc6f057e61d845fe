package domain

import (
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gobuffalo/envy"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/openinsure/custody-api/api"
)

// Context keys
const (
	ContextKeyCurrentActor = "current_actor"
	ContextKeyExtras       = "extras"
	ContextKeyTx           = "tx"

	EventPayloadID = "id"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DurationDay = time.Duration(time.Hour * 24)
)

// Event Kinds
const (
	EventApiPolicyCreated = "api:policy:created"
	EventApiClaimCreated  = "api:claim:created"
	EventApiClaimApproved = "api:claim:approved"
	EventApiClaimRejected = "api:claim:rejected"
	EventApiClaimPaid     = "api:claim:paid"
	EventApiCustodyFunded = "api:custody:funded"
)

// Env Holds the values of environment variables
var Env struct {
	GoEnv      string `ignored:"true"`
	ApiBaseURL string `required:"true" split_words:"true"`
	AppName    string `default:"CustodyAPI" split_words:"true"`
	ServerPort int    `default:"3000" split_words:"true"`
	UIURL      string `default:"http://missing.ui.url"`

	SessionSecret string `required:"true" split_words:"true"`

	// InsurerIdentity is the single authority permitted to create policies,
	// review claims, and release funds. It is established here at startup and
	// is immutable for the life of the process.
	InsurerIdentity string `required:"true" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	err := envconfig.Process("", &Env)
	if err != nil {
		log.Fatal("error loading env vars: " + err.Error())
	}

	insurer := api.Identity(Env.InsurerIdentity).Canonical()
	if !insurer.IsValid() {
		log.Fatalf("INSURER_IDENTITY %q is not a valid identity", Env.InsurerIdentity)
	}
	Env.InsurerIdentity = string(insurer)

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

// InsurerIdentity returns the configured insurer identity in canonical form
func InsurerIdentity() api.Identity {
	return api.Identity(Env.InsurerIdentity)
}

func IsProduction() bool {
	return Env.GoEnv == EnvProduction
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it.
// Errors are ignored.
func GetUUID() uuid.UUID {
	id, _ := uuid.NewV4()
	return id
}

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If not found, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	re := regexp.MustCompile(`^(?i)Bearer (.*)$`)
	matches := re.FindSubmatch([]byte(authorizationHeader))
	if len(matches) < 2 {
		return ""
	}

	return string(matches[1])
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// RandomInsecureIntInRange is insecure because it only uses the math.rand package
// and not the crypto/rand package
func RandomInsecureIntInRange(min, max int) int {
	if min >= max {
		panic("invalid parameters to RandomInsecureIntInRange: max of range must be greater than min.")
	}
	return rand.Intn(max-min+1) + min // #nosec G404
}
