package utils

type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded hands errors to the REST recovery middleware, which knows how
// to translate typed errors into HTTP responses.
func PanicIfNeeded(err error) {
	if err != nil {
		panic(err)
	}
}
