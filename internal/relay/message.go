package relay

import (
	"encoding/json"

	"CollabBoard/internal/state"
)

// Event names carried on the document topic.
const (
	EventDraw = "draw"
	EventJoin = "join"
)

// Message is the broadcast envelope. A draw carries the committed
// element; a join carries presence info for the collaborator chips.
type Message struct {
	Event    string         `json:"event"`
	Payload  *state.Element `json:"payload,omitempty"`
	Presence *Presence      `json:"presence,omitempty"`
}

// Presence describes one collaborator on a board. Role is advisory:
// the relay never gates writes by it.
type Presence struct {
	ID    string `json:"id"`
	Name  string `json:"displayName"`
	Color string `json:"color"`
	Role  string `json:"role"` // owner, editor or viewer
}

func encodeMessage(m Message) ([]byte, error) {
	return json.Marshal(m)
}

func decodeMessage(data []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(data, &m)
	return m, err
}
