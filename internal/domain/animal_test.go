package domain

import "testing"

func TestAnimalEnumeration(t *testing.T) {
	if got := len(AllAnimals()); got != 20 {
		t.Fatalf("expected 20 animal personas, got %d", got)
	}

	if !AnimalFlamingo.IsValid() {
		t.Error("flamingo should be a valid persona")
	}
	if Animal("unicorn").IsValid() {
		t.Error("unicorn should not be a valid persona")
	}
	if Animal("").IsValid() {
		t.Error("empty animal should not be valid")
	}
}

func TestAnimalDisplayName(t *testing.T) {
	if got := AnimalLion.DisplayName(); got != "Lion" {
		t.Errorf("expected Lion, got %q", got)
	}
	// Unknown values fall back to the raw string.
	if got := Animal("gremlin").DisplayName(); got != "gremlin" {
		t.Errorf("expected gremlin, got %q", got)
	}
}

func TestModerationActionLabels(t *testing.T) {
	cases := map[ModerationAction]string{
		ModerationPenalty:    "Penalty",
		ModerationWarning:    "Warning",
		ModerationMotivation: "Motivation",
		ModerationTrade:      "Trade Deal",
		ModerationMediate:    "Mediate",
		ModerationTimeout:    "Timeout",
	}
	for action, want := range cases {
		if !action.IsValid() {
			t.Errorf("%s should be valid", action)
		}
		if got := action.Label(); got != want {
			t.Errorf("%s: expected label %q, got %q", action, want, got)
		}
	}
	if ModerationAction("banhammer").IsValid() {
		t.Error("banhammer should not be a valid action")
	}
}

func TestMediatorRequestDualApproved(t *testing.T) {
	req := MediatorRequest{}
	if req.DualApproved() {
		t.Error("no flags set should not be dual approved")
	}

	req.AcceptedByCreator = true
	if req.DualApproved() {
		t.Error("one flag set should not be dual approved")
	}

	req.AcceptedByOpponent = true
	if !req.DualApproved() {
		t.Error("both flags set should be dual approved")
	}
}

func TestParseFightView(t *testing.T) {
	if view, ok := ParseFightView(""); !ok || view != ViewAll {
		t.Errorf("empty view should default to all, got %q ok=%v", view, ok)
	}
	if view, ok := ParseFightView("mediating"); !ok || view != ViewMediating {
		t.Errorf("expected mediating view, got %q ok=%v", view, ok)
	}
	if _, ok := ParseFightView("bogus"); ok {
		t.Error("bogus view should be rejected")
	}
}
