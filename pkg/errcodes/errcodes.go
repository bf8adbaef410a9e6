package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Conflict            failure.ErrorCode = "Conflict"
	CredentialsMismatch failure.ErrorCode = "CredentialsMismatch"
	TooManyRequests     failure.ErrorCode = "TooManyRequests"

	// Pipeline and storage.
	ConfigurationMissing failure.ErrorCode = "ConfigurationMissing"
	DocumentNotFound     failure.ErrorCode = "DocumentNotFound"
	StorageUnavailable   failure.ErrorCode = "StorageUnavailable"
	UpstreamFetchFailed  failure.ErrorCode = "UpstreamFetchFailed"
	DispatchFailed       failure.ErrorCode = "DispatchFailed"
	EmailNotRegistered   failure.ErrorCode = "EmailNotRegistered"
	InvalidSettings      failure.ErrorCode = "InvalidSettings"
	InvalidEmail         failure.ErrorCode = "InvalidEmail"
)
