package db

// Node type tags. The set is closed: the formatter matches on it
// exhaustively and anything else renders through the generic fallback.
const (
	TypeNote         = "note"
	TypeTask         = "task"
	TypeProject      = "project"
	TypeArtifact     = "artifact"
	TypeConversation = "conversation"
	TypeText         = "text"
	TypeAction       = "action"
	TypeWorkspace    = "workspace"
	TypeOrchestrator = "orchestrator"
)

// Edge direction values.
const (
	DirectionUni = "unidirectional"
	DirectionBi  = "bidirectional"
)

// Artifact injection formats.
const (
	InjectionFull          = "full"
	InjectionReferenceOnly = "reference-only"
)

// Node represents a row in the nodes table. Payload columns are nullable;
// which of them carry meaning depends on NodeType.
type Node struct {
	ID               string  `json:"id"`
	NodeType         string  `json:"type"`
	Title            *string `json:"title"`
	Content          *string `json:"content"`      // note, artifact, text
	Status           *string `json:"status"`       // task
	Priority         *string `json:"priority"`     // task
	Description      *string `json:"description"`  // task, project
	ContentType      *string `json:"content_type"` // artifact
	Language         *string `json:"language"`     // artifact
	InjectionFormat  *string `json:"injection_format"`
	Messages         *string `json:"messages"` // conversation transcript, JSON array of {role, content}
	IncludeInContext bool    `json:"include_in_context"`
	IsArchived       bool    `json:"is_archived"`
	CreatedAt        int64   `json:"created_at"` // Unix millis
	UpdatedAt        int64   `json:"updated_at"` // Unix millis
}

// Message is one entry of a conversation node's transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Edge represents a row in the edges table. A plain directed edge
// source -> target means "source provides context to target".
type Edge struct {
	ID              string `json:"id"`
	SourceID        string `json:"source_id"`
	TargetID        string `json:"target_id"`
	Active          bool   `json:"active"`
	Direction       string `json:"direction"`
	MaxDepth        *int   `json:"max_depth"` // per-edge ceiling on traversal depth
	IsWorkspaceLink bool   `json:"is_workspace_link"`
	CreatedAt       int64  `json:"created_at"` // Unix millis
}
