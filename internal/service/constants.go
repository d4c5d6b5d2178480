package service

import "time"

// Timeout constants for service operations
const (
	// DefaultCliffTimeout is the timeout for git-cliff operations
	DefaultCliffTimeout = 30 * time.Second
	// DefaultCargoTimeout is the timeout for cargo operations
	DefaultCargoTimeout = 120 * time.Second
	// DefaultNodeTimeout is the timeout for yarn and napi operations
	DefaultNodeTimeout = 60 * time.Second
)
