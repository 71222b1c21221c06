package respond

import "github.com/gin-gonic/gin"

// Stable machine-readable result codes. Clients dispatch on these, not
// on messages, so they never change meaning. Handlers and middleware
// both emit them; this package is the single source.
const (
	CodeConsumerLoginSuccess  = "CONSUMER_LOGIN_SUCCESS"
	CodeRetailerLoginSuccess  = "RETAILER_LOGIN_SUCCESS"
	CodeAdminLoginSuccess     = "ADMIN_LOGIN_SUCCESS"
	CodeLogoutSuccess         = "LOGOUT_SUCCESS"
	CodeSessionValid          = "SESSION_VALID"
	CodeNoData                = "NO_DATA"
	CodeInvalidJSON           = "INVALID_JSON"
	CodeMissingCredentials    = "MISSING_CREDENTIALS"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidSession        = "INVALID_SESSION"
	CodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	CodeDBConnectionError     = "DB_CONNECTION_ERROR"
	CodeSessionCreationFailed = "SESSION_CREATION_FAILED"
	CodeServerError           = "SERVER_ERROR"
)

type payload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, httpStatus int, message string, code string, data any) {
	c.JSON(httpStatus, payload{
		Status:  "success",
		Message: message,
		Code:    code,
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus int, message string, code string) {
	c.JSON(httpStatus, payload{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

// AbortError is Error for middleware: it stops the handler chain
// before writing the envelope.
func AbortError(c *gin.Context, httpStatus int, message string, code string) {
	c.Abort()
	Error(c, httpStatus, message, code)
}
