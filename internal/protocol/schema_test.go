package protocol_test

import (
	"encoding/json"
	"testing"

	"collabboard.dev/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	valid := map[string]string{
		protocol.TypeCreateCard:   `{"columnId":"todo","card":{"title":"X","description":"d"}}`,
		protocol.TypeUpdateCard:   `{"cardId":"c1","updates":{"title":"renamed"}}`,
		protocol.TypeDeleteCard:   `{"cardId":"c1"}`,
		protocol.TypeMoveCard:     `{"cardId":"c1","fromColumnId":"todo","toColumnId":"done","newPosition":-1}`,
		protocol.TypeCreateColumn: `{"title":"Doing"}`,
		protocol.TypeUpdateColumn: `{"columnId":"todo","updates":{"title":"Backlog"}}`,
		protocol.TypeDeleteColumn: `{"columnId":"todo"}`,
	}
	for msgType, sample := range valid {
		if err := v.ValidatePayload(msgType, json.RawMessage(sample)); err != nil {
			t.Fatalf("%s: expected valid, got %v", msgType, err)
		}
	}
}

func TestSchemas_RejectBadPayloads(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	invalid := map[string]string{
		protocol.TypeCreateCard:   `{"columnId":"todo","card":{"description":"no title"}}`,
		protocol.TypeUpdateCard:   `{"updates":{"title":"x"}}`,
		protocol.TypeDeleteCard:   `{"cardId":""}`,
		protocol.TypeMoveCard:     `{"cardId":"c1","fromColumnId":"todo","toColumnId":"done","newPosition":"first"}`,
		protocol.TypeCreateColumn: `{"title":""}`,
		protocol.TypeUpdateColumn: `{"columnId":"todo","updates":{"title":""}}`,
		protocol.TypeDeleteColumn: `{}`,
	}
	for msgType, sample := range invalid {
		if err := v.ValidatePayload(msgType, json.RawMessage(sample)); err == nil {
			t.Fatalf("%s: expected rejection for %s", msgType, sample)
		}
	}

	if err := v.ValidatePayload(protocol.TypeCreateCard, nil); err == nil {
		t.Fatalf("expected rejection for missing payload")
	}
	if err := v.ValidatePayload(protocol.TypeBoardState, json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected no-schema error for server type")
	}
}
