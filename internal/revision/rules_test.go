package revision

import (
	"testing"

	"ipxcheck/internal/model"
)

func TestQualifierRules(t *testing.T) {
	addrData := []model.QualifierType{model.QualifierData, model.QualifierAddress}
	clockReset := []model.QualifierType{model.QualifierClock, model.QualifierReset}
	three := []model.QualifierType{model.QualifierClock, model.QualifierReset, model.QualifierAddress}

	tests := []struct {
		rev       model.Revision
		types     []model.QualifierType
		wantCount bool
		wantCombo bool
	}{
		{model.Revision2014, addrData, true, true},
		{model.Revision2014, clockReset, true, false},
		{model.Revision2014, three, false, false},
		{model.Revision2022, addrData, true, true},
		{model.Revision2022, clockReset, true, true},
		{model.Revision2022, three, true, true},
	}

	for _, test := range tests {
		r := For(test.rev)
		if got := r.QualifierCountAllowed(len(test.types)); got != test.wantCount {
			t.Errorf("%s: QualifierCountAllowed(%d) = %v, want %v", test.rev, len(test.types), got, test.wantCount)
		}
		if got := r.QualifierCombinationAllowed(test.types); got != test.wantCombo {
			t.Errorf("%s: QualifierCombinationAllowed(%v) = %v, want %v", test.rev, test.types, got, test.wantCombo)
		}
	}

	if For(model.Revision2014).QualifierTypeAllowed(model.QualifierInterrupt) {
		t.Error("1685-2014 allows interrupt qualifier")
	}
	if !For(model.Revision2022).QualifierTypeAllowed(model.QualifierInterrupt) {
		t.Error("1685-2022 rejects interrupt qualifier")
	}
	if For(model.Revision2022).QualifierTypeAllowed(model.QualifierAny) {
		t.Error("1685-2022 allows any qualifier")
	}
}

func TestVocabularies(t *testing.T) {
	old, cur := For(model.Revision2014), For(model.Revision2022)

	if !old.InterfaceModeAllowed("master") || old.InterfaceModeAllowed("initiator") {
		t.Error("1685-2014 interface modes")
	}
	if !cur.InterfaceModeAllowed("initiator") || cur.InterfaceModeAllowed("master") {
		t.Error("1685-2022 interface modes")
	}
	if old.AccessAllowed("no-access") || !cur.AccessAllowed("no-access") {
		t.Error("no-access is a 1685-2022 value")
	}
	for _, r := range []*Rules{old, cur} {
		if !r.LevelAllowed("") || !r.LevelAllowed("high") || r.LevelAllowed("HIGH") {
			t.Errorf("%s: levels", r.Revision)
		}
		if !r.FlowTypeAllowed("creditReturn") || r.FlowTypeAllowed("credit") {
			t.Errorf("%s: flow types", r.Revision)
		}
	}
	if For(model.RevisionUnknown) != cur {
		t.Error("unknown revision does not use the newest rules")
	}
}
