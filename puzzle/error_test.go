package puzzle

import (
	"encoding/json"
	"strings"
	"testing"
)

type errorMessageTestcase struct {
	err      Error
	expected string
}

func TestErrorMessages(t *testing.T) {
	tcs := []errorMessageTestcase{
		{argumentError(WidthAttribute, 0, TooSmallCondition, 1),
			"Invalid argument: Width (0): Must be at least 1"},
		{inputError(PipesAttribute, WrongLengthCondition, "123", 4),
			"Invalid puzzle input: Pipe string (123): Must have length 4"},
		{inputError(CharacterAttribute, BadCharacterCondition, "g"),
			"Invalid puzzle input: Character (g): Must be a hexadecimal digit"},
		{inputError(CharacterAttribute, FourStubsCondition, "f"),
			"Invalid puzzle input: Character (f): No piece has stubs on all four edges"},
		{contradictionError(3, East),
			"Problem in cell 3: Edge east: No candidate rotation remains"},
		{disconnectedError(),
			"Problem in board: No rotation assignment can connect the network"},
		{exhaustedError(4),
			"Problem in search: Trial depth (4): No progress at trial depth 4"},
		{Error{Message: "canned"}, "canned"},
	}
	for i, tc := range tcs {
		if got := tc.err.Error(); got != tc.expected {
			t.Errorf("case %d: message %q (expected %q)", i+1, got, tc.expected)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsBadInput(argumentError(HeightAttribute, -1, TooSmallCondition, 1)) {
		t.Errorf("argument error is not bad input")
	}
	if !IsBadInput(inputError(CharacterAttribute, BadCharacterCondition, "z")) {
		t.Errorf("input error is not bad input")
	}
	if !IsUnsolvable(contradictionError(0, North)) {
		t.Errorf("contradiction is not unsolvable")
	}
	if !IsUnsolvable(disconnectedError()) {
		t.Errorf("disconnection is not unsolvable")
	}
	if !IsExhausted(exhaustedError(2)) {
		t.Errorf("exhaustion is not exhausted")
	}
	if IsUnsolvable(exhaustedError(2)) || IsExhausted(disconnectedError()) {
		t.Errorf("predicates overlap")
	}
	if IsBadInput(nil) || IsUnsolvable(nil) || IsExhausted(nil) {
		t.Errorf("predicates accept nil")
	}
}

func TestErrorJSON(t *testing.T) {
	err := contradictionError(5, West)
	err.Message = err.Error()
	bytes, e := json.Marshal(err)
	if e != nil {
		t.Fatalf("Failed to marshal error: %v", e)
	}
	if !strings.Contains(string(bytes), "No candidate rotation remains") {
		t.Errorf("marshaled error lacks message: %s", bytes)
	}
	var back Error
	if e := json.Unmarshal(bytes, &back); e != nil {
		t.Fatalf("Failed to unmarshal error: %v", e)
	}
	if back.Scope != CellScope || back.Condition != ContradictionCondition {
		t.Errorf("round-tripped error lost structure: %+v", back)
	}
}
