package response

const (
	MessageSuccess            = "Success"
	DefaultErrorMessage       = "Something went wrong"
	ServiceUnavailableMessage = "Service unavailable"
	TooManyRequestsMessage    = "Rate limit exceeded"

	ValidationErrorCode      = 1
	TooManyRequestsErrorCode = 429
	InternalServerErrorCode  = 500
	ServiceUnavailableCode   = 503
)

const DateTimeFormat = "2006-01-02 15:04:05"
