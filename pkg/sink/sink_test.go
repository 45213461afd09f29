package sink

import "testing"

func TestAppendLogAndPlot(t *testing.T) {
	s := NewDefaultSink()
	s.AppendLog(Info, "hello")
	s.AppendPlot(Plot{Title: "x", Value: 1})

	if got := s.Logs(); len(got) != 1 || got[0].Message != "hello" {
		t.Errorf("Logs() = %+v, want one entry \"hello\"", got)
	}
	if got := s.Plots(); len(got) != 1 || got[0].Value != 1 {
		t.Errorf("Plots() = %+v, want one entry with Value 1", got)
	}
}

func TestLabelIDsAreDenseAndNeverReused(t *testing.T) {
	s := NewDefaultSink()
	id1 := s.AddLabel(Label{Text: "a"})
	id2 := s.AddLabel(Label{Text: "b"})
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", id1, id2)
	}
	if !s.DeleteLabel(id1) {
		t.Fatal("DeleteLabel(id1) = false")
	}
	id3 := s.AddLabel(Label{Text: "c"})
	if id3 == id1 {
		t.Errorf("id3 = %d, reused deleted id1 = %d", id3, id1)
	}
	if id3 != 2 {
		t.Errorf("id3 = %d, want 2 (monotonic allocation)", id3)
	}
}

func TestLabelAndBoxIDSpacesAreDisjoint(t *testing.T) {
	s := NewDefaultSink()
	labelID := s.AddLabel(Label{Text: "a"})
	boxID := s.AddBox(Box{})
	if l, ok := s.Label(labelID); !ok || l.Text != "a" {
		t.Error("label and box id spaces collided")
	}
	if labelID != 0 || boxID != 0 {
		t.Errorf("labelID = %d, boxID = %d, want each to start at 0 independently", labelID, boxID)
	}
}

func TestSetLabelFailsForUnknownID(t *testing.T) {
	s := NewDefaultSink()
	if s.SetLabel(42, Label{Text: "x"}) {
		t.Error("SetLabel(42, ...) = true, want false for an id never allocated")
	}
}

func TestDeleteLabelRemovesFromLabelsList(t *testing.T) {
	s := NewDefaultSink()
	id := s.AddLabel(Label{Text: "a"})
	s.AddLabel(Label{Text: "b"})
	s.DeleteLabel(id)
	labels := s.Labels()
	if len(labels) != 1 || labels[0].Text != "b" {
		t.Errorf("Labels() = %+v, want only the surviving label", labels)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := NewDefaultSink()
	s.AppendLog(Info, "x")
	s.AppendPlot(Plot{Value: 1})
	s.AddLabel(Label{Text: "a"})
	s.AddBox(Box{})

	s.Clear()

	if len(s.Logs()) != 0 || len(s.Plots()) != 0 || len(s.Labels()) != 0 || len(s.Boxes()) != 0 {
		t.Fatal("Clear() did not empty all sink state")
	}
	id := s.AddLabel(Label{Text: "fresh"})
	if id != 0 {
		t.Errorf("after Clear(), first new label id = %d, want 0 (counters reset)", id)
	}
}
