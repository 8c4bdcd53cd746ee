package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	Conflict         Code = 100011

	// Account codes
	EmailNotVerified      Code = 200001
	UserSuspended         Code = 200002
	UserDocumentNotFound  Code = 200003
	EmailDomainNotAllowed Code = 200004
	TokenExpired          Code = 200005
)

var signals = map[Code]string{
	BadRequest:            "BAD_REQUEST",
	BadResponse:           "BAD_RESPONSE",
	PermissionDenied:      "PERMISSION_DENIED",
	NotFound:              "NOT_FOUND",
	Unauthenticated:       "UNAUTHENTICATED",
	AlreadyExists:         "ALREADY_EXISTS",
	Internal:              "INTERNAL",
	Unavailable:           "UNAVAILABLE",
	NotImplemented:        "NOT_IMPLEMENTED",
	TooManyRequests:       "TOO_MANY_REQUESTS",
	Conflict:              "CONFLICT",
	EmailNotVerified:      "EMAIL_NOT_VERIFIED",
	UserSuspended:         "USER_SUSPENDED",
	UserDocumentNotFound:  "USER_DOCUMENT_NOT_FOUND",
	EmailDomainNotAllowed: "EMAIL_DOMAIN_NOT_ALLOWED",
	TokenExpired:          "TOKEN_EXPIRED",
}

// Signal returns the stable name of code which clients can switch on.
func (c Code) Signal() string {
	if s, ok := signals[c]; ok {
		return s
	}

	return "UNKNOWN"
}
