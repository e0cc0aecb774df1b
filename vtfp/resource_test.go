package vtfp

import (
	"testing"
)

func TestNewMonoIntrinsicFallback(t *testing.T) {
	u := fileID(0x01)

	m, err := NewMono(u, EditRate{24, 1}, 0, 0, 100, 0)
	if err != nil {
		t.Fatalf("NewMono: %v", err)
	}
	if m.SourceDuration != 100 {
		t.Errorf("expected IntrinsicDuration fallback 100, got %d", m.SourceDuration)
	}
	if m.RepeatCount != 1 {
		t.Errorf("expected RepeatCount default 1, got %d", m.RepeatCount)
	}

	m, err = NewMono(u, EditRate{24, 1}, 0, 10, 100, 3)
	if err != nil {
		t.Fatalf("NewMono: %v", err)
	}
	if m.SourceDuration != 10 {
		t.Errorf("explicit SourceDuration must win over intrinsic, got %d", m.SourceDuration)
	}
}

func TestNewMonoMissingDuration(t *testing.T) {
	_, err := NewMono(fileID(0x01), EditRate{24, 1}, 0, 0, 0, 1)
	if err == nil {
		t.Fatalf("expected error when both durations are zero")
	}
	if !IsKind(err, KindMissingDuration) {
		t.Errorf("expected MissingDuration kind, got %v", err)
	}
	if RuleID(err) != "VTFP-RES-010" {
		t.Errorf("unexpected rule id %q", RuleID(err))
	}
}

func TestNewStereoResourceInvariants(t *testing.T) {
	base := func() (MonoResource, MonoResource) {
		l, err := NewMono(fileID(0xA0), EditRate{24, 1}, 0, 10, 0, 1)
		if err != nil {
			t.Fatalf("NewMono: %v", err)
		}
		r, err := NewMono(fileID(0xB0), EditRate{24, 1}, 0, 10, 0, 1)
		if err != nil {
			t.Fatalf("NewMono: %v", err)
		}
		return l, r
	}

	tests := []struct {
		name   string
		mutate func(l, r *MonoResource)
		rule   string
	}{
		{"edit rate mismatch", func(l, r *MonoResource) { r.EditRate = EditRate{48, 1} }, "VTFP-RES-001"},
		{"duration mismatch", func(l, r *MonoResource) { r.SourceDuration = 11 }, "VTFP-RES-002"},
		{"left repeat not one", func(l, r *MonoResource) { l.RepeatCount = 2 }, "VTFP-RES-003"},
		{"right repeat not one", func(l, r *MonoResource) { r.RepeatCount = 2 }, "VTFP-RES-003"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, r := base()
			tc.mutate(&l, &r)
			_, err := NewStereoResource(l, r, 1)
			if err == nil {
				t.Fatalf("expected construction to fail")
			}
			if !IsKind(err, KindMalformedResource) {
				t.Errorf("expected MalformedResource kind, got %v", err)
			}
			if RuleID(err) != tc.rule {
				t.Errorf("expected rule %s, got %s", tc.rule, RuleID(err))
			}
		})
	}

	l, r := base()
	res, err := NewStereoResource(l, r, 0)
	if err != nil {
		t.Fatalf("NewStereoResource: %v", err)
	}
	if res.RepeatCount != 1 {
		t.Errorf("expected outer RepeatCount default 1, got %d", res.RepeatCount)
	}
	if res.SourceDuration != 10 {
		t.Errorf("expected outer SourceDuration 10, got %d", res.SourceDuration)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := mustStereo(t, fileID(0xA0), fileID(0xB0), 0, 10, 1)
	c := orig.Clone()
	c.ExtendRepeat(orig)
	c.ExtendSourceDuration(orig)

	if orig.RepeatCount != 1 || orig.SourceDuration != 10 {
		t.Errorf("clone mutation leaked into original: rc=%d dur=%d", orig.RepeatCount, orig.SourceDuration)
	}
	if orig.LeftEye.SourceDuration != 10 || orig.RightEye.RepeatCount != 1 {
		t.Errorf("clone mutation leaked into original eyes")
	}
	if c.RepeatCount != 2 || c.SourceDuration != 20 {
		t.Errorf("clone not extended: rc=%d dur=%d", c.RepeatCount, c.SourceDuration)
	}
}

func TestExtendRecursesIntoEyes(t *testing.T) {
	a := mustStereo(t, fileID(0xA0), fileID(0xB0), 0, 10, 1)
	b := mustStereo(t, fileID(0xA0), fileID(0xB0), 0, 10, 3)

	a.ExtendRepeat(b)
	if a.RepeatCount != 4 {
		t.Errorf("expected outer RepeatCount 4, got %d", a.RepeatCount)
	}
	if a.LeftEye.RepeatCount != 2 || a.RightEye.RepeatCount != 2 {
		t.Errorf("expected eye RepeatCounts to absorb the eyes' counts, got %d/%d",
			a.LeftEye.RepeatCount, a.RightEye.RepeatCount)
	}

	c := mustStereo(t, fileID(0xA0), fileID(0xB0), 10, 5, 1)
	d := mustStereo(t, fileID(0xA0), fileID(0xB0), 0, 10, 1)
	d.ExtendSourceDuration(c)
	if d.SourceDuration != 15 || d.LeftEye.SourceDuration != 15 || d.RightEye.SourceDuration != 15 {
		t.Errorf("expected duration 15 at every level, got %d/%d/%d",
			d.SourceDuration, d.LeftEye.SourceDuration, d.RightEye.SourceDuration)
	}
}
