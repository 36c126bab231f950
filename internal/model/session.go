package model

// SessionID uniquely identifies a live play session
type SessionID string
