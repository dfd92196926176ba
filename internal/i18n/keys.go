// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyError       = "error"
	KeyRateLimited = "rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAdminNotFound      = "auth.admin_not_found"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationID      = "validation.invalid_id"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileRequired      = "file.required"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileDeleted       = "file.deleted"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"
)
