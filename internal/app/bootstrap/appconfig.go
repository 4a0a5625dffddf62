// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); AppConfig carries
// everything specific to this API.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// JWT bearer tokens
	JWTSecret string
	JWTExpiry time.Duration

	// File storage configuration
	StorageType      string // "local" or "s3"
	StorageLocalPath string
	StorageLocalURL  string

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Site identity used in transactional email
	SiteName string
	BaseURL  string

	// Bootstrap admin account (seeded when all three are set)
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Back-office inbox for job application notifications
	ApplicationNotifyEmail string

	// Password reset
	ResetCodeExpiry      time.Duration
	ResetCleanupInterval time.Duration

	// Credential endpoint rate limits
	LoginIPLimit     int
	LoginIPWindow    time.Duration
	LoginEmailLimit  int
	LoginEmailWindow time.Duration

	// CORS origins for the JSON API ("*" or comma-separated list)
	CORSAllowedOrigins string

	// Handler operation timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
