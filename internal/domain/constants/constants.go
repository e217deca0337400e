// Package constants holds shared provider identifiers.
package constants

// Cart storage providers.
const (
	StorageProviderFile   = "file"
	StorageProviderRedis  = "redis"
	StorageProviderMemory = "memory"
)

// Order intake providers.
const (
	IntakeProviderSheet = "sheet"
	IntakeProviderForm  = "form"
	IntakeProviderNoop  = "noop"
)
