package error

// GenericError is implemented by every typed error in this package so the
// REST recovery middleware can map it to an HTTP response.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
