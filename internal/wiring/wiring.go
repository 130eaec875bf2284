// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sheaf/internal/adapters/config"
	_ "go.trai.ch/sheaf/internal/adapters/logger"
	_ "go.trai.ch/sheaf/internal/adapters/telemetry"
	_ "go.trai.ch/sheaf/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/sheaf/internal/app"
)
