package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
)

// Translation Engine Error Codes
const (
	ErrCodeTranslationEmptyInput  ErrorCode = "TRN_001"
	ErrCodeTranslationFailed      ErrorCode = "TRN_002"
	ErrCodeRoleTableUnavailable   ErrorCode = "TRN_003"
	ErrCodeRuleTableInvalid       ErrorCode = "TRN_004"
)

// Lexicon / Dictionary Error Codes
const (
	ErrCodeWordNotFound       ErrorCode = "LEX_001"
	ErrCodeLexiconLoadFailed  ErrorCode = "LEX_002"
	ErrCodeLexiconInvalid     ErrorCode = "LEX_003"
	ErrCodeDictionaryUnavailable ErrorCode = "LEX_004"
)

// Pose Asset Error Codes
const (
	ErrCodePoseNotFound       ErrorCode = "POSE_001"
	ErrCodePoseNameInvalid    ErrorCode = "POSE_002"
	ErrCodePoseMetaScanFailed ErrorCode = "POSE_003"
	ErrCodePoseStoreUnavailable ErrorCode = "POSE_004"
)

// Segmentation Error Codes
const (
	ErrCodeSegmenterUnavailable ErrorCode = "SEG_001"
	ErrCodeSegmenterBadResponse ErrorCode = "SEG_002"
)

// Aliases kept short for the most frequent call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeTranslationEmptyInput: http.StatusBadRequest,
	ErrCodeTranslationFailed:     http.StatusInternalServerError,
	ErrCodeRoleTableUnavailable:  http.StatusServiceUnavailable,
	ErrCodeRuleTableInvalid:      http.StatusInternalServerError,

	ErrCodeWordNotFound:          http.StatusNotFound,
	ErrCodeLexiconLoadFailed:     http.StatusInternalServerError,
	ErrCodeLexiconInvalid:        http.StatusUnprocessableEntity,
	ErrCodeDictionaryUnavailable: http.StatusServiceUnavailable,

	ErrCodePoseNotFound:         http.StatusNotFound,
	ErrCodePoseNameInvalid:      http.StatusBadRequest,
	ErrCodePoseMetaScanFailed:   http.StatusUnprocessableEntity,
	ErrCodePoseStoreUnavailable: http.StatusServiceUnavailable,

	ErrCodeSegmenterUnavailable: http.StatusServiceUnavailable,
	ErrCodeSegmenterBadResponse: http.StatusBadGateway,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeTranslationEmptyInput: "translation input is empty",
	ErrCodeTranslationFailed:     "translation failed",
	ErrCodeRoleTableUnavailable:  "category-role table unavailable",
	ErrCodeRuleTableInvalid:      "reordering rule table is invalid",

	ErrCodeWordNotFound:          "word not found in dictionary",
	ErrCodeLexiconLoadFailed:     "failed to load heuristic lexicon",
	ErrCodeLexiconInvalid:        "heuristic lexicon is invalid",
	ErrCodeDictionaryUnavailable: "sign dictionary unavailable",

	ErrCodePoseNotFound:         "pose file not found",
	ErrCodePoseNameInvalid:      "invalid pose file name",
	ErrCodePoseMetaScanFailed:   "failed to scan pose file metadata",
	ErrCodePoseStoreUnavailable: "pose store unavailable",

	ErrCodeSegmenterUnavailable: "word segmenter unavailable",
	ErrCodeSegmenterBadResponse: "word segmenter returned a malformed response",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
