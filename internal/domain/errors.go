package domain

import "errors"

// Error kinds surfaced by the calculation core and the trade store.
// Details are attached with fmt.Errorf("%w: ...") so callers match with errors.Is.
var (
	// ErrInvalidInput is returned when projection inputs violate a documented constraint
	ErrInvalidInput = errors.New("invalid projection input")

	// ErrInvalidTrade is returned when new trade fields fail validation
	ErrInvalidTrade = errors.New("invalid trade")

	// ErrInvalidExit is returned when exit fields fail validation
	ErrInvalidExit = errors.New("invalid exit")

	// ErrTradeNotFound is returned when a trade id is not known
	ErrTradeNotFound = errors.New("trade not found")

	// ErrMissingUser is returned when an operation is not scoped to a user
	ErrMissingUser = errors.New("user id is required")

	// ErrPersistence is returned when the persistence collaborator call failed
	ErrPersistence = errors.New("persistence failure")
)

// IsValidationError reports whether err is caused by caller-supplied data
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidTrade) ||
		errors.Is(err, ErrInvalidExit) ||
		errors.Is(err, ErrMissingUser)
}
