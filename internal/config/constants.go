package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Outbound call timeouts. Classification and RAG loading run ML pipelines
// downstream, so these are generous and independent of each other.
const (
	ClassifyTimeout = 5 * time.Minute
	RAGLoadTimeout  = 2 * time.Minute
	RAGQueryTimeout = 60 * time.Second
	TelegramTimeout = 60 * time.Second
)

// Attachment storage sweep: orphaned files appear when a session expires in
// Redis before its case is submitted, so anything well past the session TTL
// is safe to delete.
const (
	CleanupJobInterval = 5 * time.Minute
	TempFileMaxAge     = 15 * time.Minute
)
