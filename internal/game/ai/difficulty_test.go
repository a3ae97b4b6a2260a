package ai

import "testing"

func TestProfileForKnownLevels(t *testing.T) {
	for _, level := range []Level{Easy, Intermediate, Hard, Insane} {
		if _, ok := Profiles[level]; !ok {
			t.Errorf("Profiles missing entry for %q", level)
		}
		if p := ProfileFor(level); p.DecisionIntervalMs <= 0 {
			t.Errorf("ProfileFor(%q).DecisionIntervalMs = %v, want positive", level, p.DecisionIntervalMs)
		}
	}
}

func TestProfileForUnknownFallsBackToIntermediate(t *testing.T) {
	got := ProfileFor(Level("not-a-real-level"))
	want := Profiles[Intermediate]
	if got != want {
		t.Errorf("ProfileFor(unknown) = %+v, want Intermediate profile %+v", got, want)
	}
}

func TestHarderLevelsAreFasterAndMoreAccurate(t *testing.T) {
	easy := ProfileFor(Easy)
	insane := ProfileFor(Insane)
	if insane.DecisionIntervalMs >= easy.DecisionIntervalMs {
		t.Error("Insane should decide more often (lower interval) than Easy")
	}
	if insane.Accuracy <= easy.Accuracy {
		t.Error("Insane should be more accurate than Easy")
	}
}
