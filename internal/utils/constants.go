package utils

import "time"

// Application Constants
const (
	AppName    = "RideBoard"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "pt-BR"
	DefaultTimeZone = "America/Sao_Paulo"

	// Storage
	GroupsCollection = "groups"

	// Ride Constants
	MaxDescriptionLength = 200
	DefaultSweepInterval = 30 * time.Minute
	ScheduleCacheTTL     = 2 * time.Minute

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrStoreDown        = "Document store unavailable"
)
