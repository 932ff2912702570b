package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/spendwrap/schema"
)

// SummaryMessage is the body published for each finished summary.
type SummaryMessage struct {
	MessageID   string                 `json:"message_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	TargetYear  int                    `json:"target_year"`
	Sources     []string               `json:"sources"`
	Summary     schema.AnalysisSummary `json:"summary"`
}

// NewSummaryMessage wraps output in a message with a fresh id.
func NewSummaryMessage(output *schema.SummaryOutput, now time.Time) *SummaryMessage {
	return &SummaryMessage{
		MessageID:   uuid.NewString(),
		GeneratedAt: now.UTC(),
		TargetYear:  output.Summary.TargetYear,
		Sources:     output.Sources,
		Summary:     output.Summary,
	}
}

// ToJSON encodes the message body.
func (m *SummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummaryMessageFromJSON decodes a message body.
func SummaryMessageFromJSON(data []byte) (*SummaryMessage, error) {
	var m SummaryMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
