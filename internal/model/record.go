// Package model defines the core record data types.
package model

import (
	"fmt"
	"time"
)

// Record is the stored unit of content plus metadata.
//
// Content holds the payload exactly as persisted: when Compressed or
// Sealed is set it is the encoded form, and the vault decodes it before
// handing the record to a caller.
type Record struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Version    int      `json:"version"`
	Compressed bool     `json:"compressed,omitempty"`
	Sealed     bool     `json:"sealed,omitempty"`
	Metadata   Metadata `json:"metadata"`
}

// Metadata carries the descriptive fields attached to a record.
type Metadata struct {
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Kind         string     `json:"kind"`
	Priority     string     `json:"priority"`
	Tags         []string   `json:"tags,omitempty"`
	Category     string     `json:"category,omitempty"`
	Source       string     `json:"source,omitempty"`
	Confidence   float64    `json:"confidence"`
	AccessCount  int        `json:"access_count"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// Profile selects the kind vocabulary a store enforces.
type Profile string

const (
	// ProfileMemory is the memories-store vocabulary.
	ProfileMemory Profile = "memory"
	// ProfilePrompt is the prompts-store vocabulary.
	ProfilePrompt Profile = "prompt"
)

var memoryKinds = map[string]bool{
	"factual":    true,
	"procedural": true,
	"episodic":   true,
	"semantic":   true,
}

var promptKinds = map[string]bool{
	"draft":      true,
	"active":     true,
	"archived":   true,
	"deprecated": true,
}

// Kinds returns the allowed kind labels for the profile.
func (p Profile) Kinds() map[string]bool {
	if p == ProfilePrompt {
		return promptKinds
	}
	return memoryKinds
}

// DefaultKind is the kind assigned when the caller leaves it empty.
func (p Profile) DefaultKind() string {
	if p == ProfilePrompt {
		return "draft"
	}
	return "semantic"
}

// Priority levels, lowest to highest.
const (
	PriorityLow      = "low"
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ValidPriorities are the allowed priority levels.
var ValidPriorities = map[string]bool{
	PriorityLow:      true,
	PriorityNormal:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// PriorityWeight maps a priority label to its search-score contribution.
func PriorityWeight(p string) float64 {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// Validate fills defaults and checks metadata against the profile.
// Tags are deduplicated in place, preserving first-seen order.
func (m *Metadata) Validate(profile Profile) error {
	if m.Kind == "" {
		m.Kind = profile.DefaultKind()
	}
	if !profile.Kinds()[m.Kind] {
		return fmt.Errorf("invalid kind %q for %s profile", m.Kind, profile)
	}
	if m.Priority == "" {
		m.Priority = PriorityNormal
	}
	if !ValidPriorities[m.Priority] {
		return fmt.Errorf("invalid priority %q (valid: low, normal, high, critical)", m.Priority)
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", m.Confidence)
	}
	if m.AccessCount < 0 {
		return fmt.Errorf("access_count %d must be non-negative", m.AccessCount)
	}
	if len(m.Tags) > 0 {
		seen := make(map[string]bool, len(m.Tags))
		deduped := m.Tags[:0]
		for _, t := range m.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			deduped = append(deduped, t)
		}
		m.Tags = deduped
	}
	return nil
}
