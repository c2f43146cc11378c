package types

type RunMode string

const (
	// ModeLocal runs the document API with local defaults
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// OrgProfileSource selects where the issuing organization profile is read from
type OrgProfileSource string

const (
	OrgProfileSourceSupabase OrgProfileSource = "supabase"
	OrgProfileSourcePostgres OrgProfileSource = "postgres"
	OrgProfileSourceStatic   OrgProfileSource = "static"
)
