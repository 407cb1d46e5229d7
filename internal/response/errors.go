package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenRevoked       ErrCode = "TOKEN_REVOKED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrRoleNotPermitted ErrCode = "ROLE_NOT_PERMITTED"
	ErrNotOwner         ErrCode = "NOT_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrTextTooShort   ErrCode = "TEXT_TOO_SHORT"
	ErrTextTooLong    ErrCode = "TEXT_TOO_LONG"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrFileMissing      ErrCode = "FILE_MISSING"
	ErrConflict         ErrCode = "CONFLICT"
	ErrAdminUndeletable ErrCode = "ADMIN_UNDELETABLE"
	ErrAdminExists      ErrCode = "ADMIN_ALREADY_EXISTS"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrFileEmpty       ErrCode = "FILE_EMPTY"
	ErrTextExtraction  ErrCode = "TEXT_EXTRACTION_FAILED"

	// ─── External providers ────────────────────────────────────────────
	ErrAIUnavailable       ErrCode = "AI_UNAVAILABLE"
	ErrAIGenerationFailed  ErrCode = "AI_GENERATION_FAILED"
	ErrVideoSearchDisabled ErrCode = "VIDEO_SEARCH_NOT_CONFIGURED"
	ErrVideoSearchFailed   ErrCode = "VIDEO_SEARCH_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrEmailTaken:
		return "User already exists."
	case ErrAccountDisabled:
		return "This account has been deactivated."
	case ErrTokenRequired:
		return "No token, authorization denied."
	case ErrTokenInvalid:
		return "Token is not valid."
	case ErrTokenRevoked:
		return "Token has been logged out."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Forbidden: you do not have the required role."
	case ErrRoleNotPermitted:
		return "This role cannot be assigned."
	case ErrNotOwner:
		return "Not authorized to modify this resource."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrTextTooShort:
		return "Text is too short. Please provide more content."
	case ErrTextTooLong:
		return "Text too long. Maximum 10,000 characters allowed."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrFileMissing:
		return "File not found on server."
	case ErrConflict:
		return "Resource already exists."
	case ErrAdminUndeletable:
		return "Cannot delete admin users."
	case ErrAdminExists:
		return "Admin user already exists."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "No file uploaded."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrFileEmpty:
		return "File is empty. Please upload a file with content."
	case ErrTextExtraction:
		return "Unable to extract readable text from the uploaded file."

	// ─── External providers ────────────────────────────────────────────
	case ErrAIUnavailable:
		return "AI service temporarily unavailable. Please try again later."
	case ErrAIGenerationFailed:
		return "The AI service failed to produce a response. Please try again."
	case ErrVideoSearchDisabled:
		return "YouTube API key is not configured."
	case ErrVideoSearchFailed:
		return "Failed to fetch YouTube videos. Please try again later."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
