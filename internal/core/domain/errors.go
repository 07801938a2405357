package domain

import "errors"

// Authentication and provisioning errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	// ErrRoleRecordMissing means the identity provider accepted the
	// credentials but no user record exists for the identity. Unlike
	// ErrInvalidCredentials, retrying with different input will not help.
	ErrRoleRecordMissing  = errors.New("no role record for identity")
	ErrAlreadyProvisioned = errors.New("system is already provisioned")
	ErrProvisioningCheck  = errors.New("provisioning check failed")
)

// Persistence and lookup errors.
var (
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUserNotFound       = errors.New("user not found")
	ErrAreaNotFound       = errors.New("area not found")
	ErrReportNotFound     = errors.New("work report not found")
	ErrForbidden          = errors.New("access forbidden")
)

// Geolocation errors. Each cause carries a distinct user-facing message;
// all of them block only the work-report submission flow.
var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrLocationPermission  = errors.New("location access denied: enable location services to report work")
	ErrLocationNoPosition  = errors.New("location information is unavailable")
	ErrLocationTimeout     = errors.New("location request timed out")
)
