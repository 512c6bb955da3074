package error

import "net/http"

// StorageError covers persistence I/O and parse failures. It is fatal to the
// operation that hit it and is never retried automatically.
type StorageError string

func (err StorageError) Error() string {
	return string(err)
}

func (err StorageError) ErrCode() string {
	return "STORAGE_ERROR"
}

func (err StorageError) StatusCode() int {
	return http.StatusInternalServerError
}
