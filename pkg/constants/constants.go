// Package constants provides shared constants used throughout hxebclass.
// This includes timeouts, remote service defaults, file permissions, and
// the Classroom OAuth scopes.
package constants

import "time"

// Timeout constants.
const (
	// DefaultHTTPTimeout is the standard timeout for a single Classroom API round trip
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultDBTimeout bounds one org database query
	DefaultDBTimeout = 60 * time.Second

	// CredentialDetectTimeout bounds local credential discovery
	CredentialDetectTimeout = 2 * time.Second

	// ShutdownTimeout is how long main waits for cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants.
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for cached credentials (rw-------)
	SecureFilePermissions = 0600
)

// Remote service constants.
const (
	// ClassroomEndpoint is the default Classroom REST endpoint.
	ClassroomEndpoint = "https://classroom.googleapis.com"

	// ClassroomService names the remote service in errors and logs.
	ClassroomService = "classroom"

	// DefaultPageSize is the page size used for list calls.
	DefaultPageSize = 100

	// OwnerMe is the owner sentinel meaning "the authenticated user".
	OwnerMe = "me"
)

// ClassroomScopes are the OAuth scopes needed to manage courses and rosters.
var ClassroomScopes = []string{
	"https://www.googleapis.com/auth/classroom.courses",
	"https://www.googleapis.com/auth/classroom.rosters",
	"https://www.googleapis.com/auth/classroom.coursework.students",
	"https://www.googleapis.com/auth/classroom.profile.emails",
}

// Database driver names accepted by the org source.
const (
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "pgx"
	DriverSQLite    = "sqlite"
)
