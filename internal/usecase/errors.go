package usecase

// DomainError is a caller-facing failure (4xx class). Fields carries the
// per-field validation detail when Code is VALIDATION_ERROR.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an internal failure (5xx class). Message must stay
// generic; internals are logged, never serialized into a response.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
