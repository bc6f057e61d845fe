package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorMustBeAValidID        = ErrorKey("ErrorMustBeAValidID")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorMissingAuthIdentity = ErrorKey("ErrorMissingAuthIdentity")
	ErrorInvalidAuthIdentity = ErrorKey("ErrorInvalidAuthIdentity")

	// Policy
	ErrorPolicyNotFound         = ErrorKey("ErrorPolicyNotFound")
	ErrorPolicyInvalidHolder    = ErrorKey("ErrorPolicyInvalidHolder")
	ErrorPolicyInvalidDuration  = ErrorKey("ErrorPolicyInvalidDuration")
	ErrorPolicyNegativePremium  = ErrorKey("ErrorPolicyNegativePremium")
	ErrorPolicyNegativeCoverage = ErrorKey("ErrorPolicyNegativeCoverage")

	// Claim
	ErrorClaimNotFound               = ErrorKey("ErrorClaimNotFound")
	ErrorClaimEmptyDescription       = ErrorKey("ErrorClaimEmptyDescription")
	ErrorClaimNegativeAmount         = ErrorKey("ErrorClaimNegativeAmount")
	ErrorClaimInvalidStateTransition = ErrorKey("ErrorClaimInvalidStateTransition")

	// Custody
	ErrorCustodyInsufficientFunds = ErrorKey("ErrorCustodyInsufficientFunds")
	ErrorCustodyInvalidAmount     = ErrorKey("ErrorCustodyInvalidAmount")

	// Session
	ErrorSessionNoDeployment        = ErrorKey("ErrorSessionNoDeployment")
	ErrorSessionAuthorizationDenied = ErrorKey("ErrorSessionAuthorizationDenied")
	ErrorSessionAlreadyPending      = ErrorKey("ErrorSessionAlreadyPending")
	ErrorSessionWalletUnavailable   = ErrorKey("ErrorSessionWalletUnavailable")
)
