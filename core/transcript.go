package core

import "strings"

// Transcript is an ordered, append-only sequence of conversation messages.
// All mutating helpers return a new value; callers thread transcripts through
// explicitly instead of sharing a mutable slice.
type Transcript []Message

// Append returns a new transcript extended by the given messages. The receiver
// is never mutated.
func (t Transcript) Append(msgs ...Message) Transcript {
	out := make(Transcript, 0, len(t)+len(msgs))
	out = append(out, t...)
	out = append(out, msgs...)
	return out
}

// LastUser returns the most recent user message.
func (t Transcript) LastUser() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == RoleUser {
			return t[i], true
		}
	}
	return Message{}, false
}

// LastAssistant returns the most recent assistant message.
func (t Transcript) LastAssistant() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == RoleAssistant {
			return t[i], true
		}
	}
	return Message{}, false
}

// AgentMessages returns the assistant messages whose content carries an
// "Agent:" role label. These are the specialist narratives the synthesis
// stage feeds back to the model.
func (t Transcript) AgentMessages() []Message {
	var out []Message
	for _, m := range t {
		if m.Role == RoleAssistant && strings.Contains(m.Content, "Agent:") {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns an independent copy of the transcript.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}
