package game

import "time"

const (
	DefaultSessionTTL   = 30 * time.Minute // idle sessions older than this are dropped
	CleanupInterval     = 60 * time.Second
	MaxSessionsPerHub   = 1024
	SpeakerFallbackName = "Character"
)
