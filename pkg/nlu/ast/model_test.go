package ast

import (
	"errors"
	"reflect"
	"testing"
)

func testModel() *Model {
	return &Model{
		Intents: []*Intent{
			{Name: "HelloIntent", Phrases: []*Phrase{{Text: "hi"}, {Text: "hello"}}},
			{Name: "EmptyIntent"},
		},
		EntityTypes: []*EntityType{
			{
				Name: "Color",
				Values: []EntityValue{
					&BareValue{Value: "red"},
					&StructuredValue{Value: "blue", Synonyms: []*Synonym{{Text: "azure"}}},
				},
			},
		},
	}
}

type recordingVisitor struct {
	BaseVisitor
	events []string
	failOn string
}

func (r *recordingVisitor) record(event string) error {
	r.events = append(r.events, event)
	if event == r.failOn {
		return errors.New("stop")
	}
	return nil
}

func (r *recordingVisitor) VisitIntent(i *Intent) error { return r.record("intent:" + i.Name) }
func (r *recordingVisitor) VisitPhrase(_ *Intent, p *Phrase) error {
	return r.record("phrase:" + p.Text)
}
func (r *recordingVisitor) VisitEntityType(e *EntityType) error {
	return r.record("type:" + e.Name)
}
func (r *recordingVisitor) VisitEntityValue(_ *EntityType, v EntityValue) error {
	return r.record("value:" + v.Raw())
}
func (r *recordingVisitor) VisitSynonym(_ *EntityType, _ *StructuredValue, s *Synonym) error {
	return r.record("synonym:" + s.Text)
}

func TestWalkOrder(t *testing.T) {
	v := &recordingVisitor{}
	if err := Walk(testModel(), v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{
		"intent:HelloIntent", "phrase:hi", "phrase:hello",
		"intent:EmptyIntent",
		"type:Color", "value:red", "value:blue", "synonym:azure",
	}
	if !reflect.DeepEqual(v.events, want) {
		t.Errorf("Walk() events = %v, want %v", v.events, want)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	v := &recordingVisitor{failOn: "phrase:hi"}
	if err := Walk(testModel(), v); err == nil {
		t.Fatal("Walk() expected error")
	}
	if len(v.events) != 2 {
		t.Errorf("Walk() visited %d nodes after error, want 2", len(v.events))
	}
}

func TestModelAccessors(t *testing.T) {
	m := testModel()

	if !m.HasIntents() || !m.HasEntityTypes() {
		t.Error("expected intents and entity types to be present")
	}
	if m.GetIntent("HelloIntent") == nil {
		t.Error("GetIntent(HelloIntent) returned nil")
	}
	if m.GetIntent("Missing") != nil {
		t.Error("GetIntent(Missing) should return nil")
	}
	if m.GetEntityType("Color") == nil {
		t.Error("GetEntityType(Color) returned nil")
	}
	if got := m.PhraseCount(); got != 2 {
		t.Errorf("PhraseCount() = %d, want 2", got)
	}

	empty := &Model{}
	if empty.HasIntents() || empty.HasEntityTypes() {
		t.Error("zero Model should report absent sections")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		loc   Location
		str   string
		valid bool
	}{
		{Location{File: "models/de.json", Line: 3, Column: 7}, "models/de.json:3:7", true},
		{Location{File: "models/de.json"}, "models/de.json", false},
		{Location{}, "<unknown>", false},
	}

	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.loc.IsValid(); got != tt.valid {
			t.Errorf("IsValid() = %v, want %v", got, tt.valid)
		}
	}
}
