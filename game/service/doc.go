// Package service provides the business logic layer for 2048 game sessions.
//
// The service package implements:
//   - Multi-session game management
//   - Move and bulk move processing
//   - Move history pagination
//   - Configuration listing, loading and saving
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Engines do no locking of their own; every call into a
// session's engine happens under the service mutex.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, "left", false)
//
// Errors:
//
// Lookups of unknown sessions wrap ErrSessionNotFound; moves in an unknown
// direction wrap engine.ErrInvalidDirection.
package service
