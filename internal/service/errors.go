package service

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrAgentBlocked         = errors.New("agent blocked by policy")
	ErrBackendFailed        = errors.New("chat backend failed")
	ErrSessionNotFound      = errors.New("session not found")
)
