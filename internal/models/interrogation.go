package models

type TurnRole string

const (
	RoleAssistant TurnRole = "assistant"
	RoleUser      TurnRole = "user"
)

// ConversationTurn is one message in the gap-analysis conversation.
type ConversationTurn struct {
	Role             TurnRole `json:"role"`
	Content          string   `json:"content"`
	SkillBeingProbed string   `json:"skill_being_probed,omitempty"`
	Context          string   `json:"context,omitempty"`
}

// InterrogationState tracks one gap-analysis conversation. Turns are
// append-only and strictly ordered by submission; the state is terminal once
// IsComplete is set.
type InterrogationState struct {
	Turns           []ConversationTurn `json:"turns"`
	IsComplete      bool               `json:"is_complete"`
	GapsIdentified  []string           `json:"gaps_identified"`
	ConfirmedSkills []string           `json:"confirmed_skills"`
	Summary         string             `json:"summary,omitempty"`
}
