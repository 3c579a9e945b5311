package dto

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when form validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeOutOfStock is used when an out-of-stock product is added to the cart
	ErrCodeOutOfStock = "ERR_OUT_OF_STOCK"
	// ErrCodeEmptyCart is used when a checkout has no items to order
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
	// ErrCodeSubmissionFailed is used when the backend rejects or never receives an order
	ErrCodeSubmissionFailed = "ERR_SUBMISSION_FAILED"
	// ErrCodeCatalogUnavailable is used when the backend catalog cannot be fetched
	ErrCodeCatalogUnavailable = "ERR_CATALOG_UNAVAILABLE"
)
