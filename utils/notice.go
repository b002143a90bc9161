package utils

import "go.uber.org/zap"

// NoticeLevel classifies a user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice is a blocking, user-facing message raised by an explicit user
// action. Failures during silent background work never produce one;
// those are logged only.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// ErrorNotice builds a blocking notice with a generic recovery message
// and logs the underlying cause.
func ErrorNotice(title, message string, err error) Notice {
	GetLogger().Error(title, zap.Error(err))
	return Notice{Level: NoticeError, Title: title, Message: message}
}

// SuccessNotice builds a confirmation notice.
func SuccessNotice(title, message string) Notice {
	return Notice{Level: NoticeSuccess, Title: title, Message: message}
}

// WarningNotice builds a non-fatal validation notice (capacity reached,
// missing fields, password mismatch).
func WarningNotice(title, message string) Notice {
	return Notice{Level: NoticeWarning, Title: title, Message: message}
}
