package errors

// ErrorCode identifies an application error class in API responses.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_UNAUTHENTICATED
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_SUMMARIZATION_FAILED
	ErrorCode_JOB_NOT_READY
	ErrorCode_STORAGE_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:              "UNKNOWN",
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:       "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:      "UNAUTHENTICATED",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_SUMMARIZATION_FAILED: "SUMMARIZATION_FAILED",
	ErrorCode_JOB_NOT_READY:        "JOB_NOT_READY",
	ErrorCode_STORAGE_FAILED:       "STORAGE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
