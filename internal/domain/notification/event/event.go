package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
)

type Event interface {
	Op() string
}

type Metadata struct {
	To string `json:"to"`
}

// EventRequest is the envelope published on the notification topic. Data is
// the flattened event so the consumer can decode it without knowing the
// concrete type in advance.
type EventRequest struct {
	Op       string         `json:"o"`
	Data     map[string]any `json:"d"`
	Metadata Metadata       `json:"m"`
}

type EventResponse struct {
	Op   string `json:"o"`
	Seq  int64  `json:"s"`
	Data any    `json:"d"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     structs.Map(ev),
		Metadata: metadata,
	}
}

func Format(event *EventRequest, seq int64) *EventResponse {
	return &EventResponse{
		Op:   event.Op,
		Seq:  seq,
		Data: event.Data,
	}
}

func Marshal(event *EventRequest) ([]byte, error) {
	return json.Marshal(event)
}

// Unmarshal rejects envelopes without a receiver or a payload.
func Unmarshal(b []byte) (*EventRequest, error) {
	var req EventRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, err
	}

	if req.Metadata.To == "" {
		return nil, errors.New("event has no receiver")
	}

	if req.Data == nil {
		return nil, fmt.Errorf("event %s has no data", req.Op)
	}

	return &req, nil
}

// Decode turns the envelope back into its concrete event.
func Decode(req *EventRequest) (Notifiable, error) {
	var ev Notifiable
	switch req.Op {
	case FollowedEvent{}.Op():
		ev = &FollowedEvent{}
	case ThankedEvent{}.Op():
		ev = &ThankedEvent{}
	case BestAnswerEvent{}.Op():
		ev = &BestAnswerEvent{}
	case BadgeEarnedEvent{}.Op():
		ev = &BadgeEarnedEvent{}
	case MessageEvent{}.Op():
		ev = &MessageEvent{}
	default:
		return nil, fmt.Errorf("unknown event op %s", req.Op)
	}

	if err := mapstructure.Decode(req.Data, ev); err != nil {
		return nil, err
	}

	return ev, nil
}
