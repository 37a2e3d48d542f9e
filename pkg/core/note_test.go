package core

import (
	"reflect"
	"testing"
)

func TestCollection_Order(t *testing.T) {
	c := NewCollection()
	c.Set("b", "1")
	c.Set("a", "2")
	c.Set("c", "3")

	// Overwrite keeps the original position.
	c.Set("b", "updated")

	if got, want := c.Titles(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Titles() = %v, want %v", got, want)
	}
	if v, _ := c.Get("b"); v != "updated" {
		t.Errorf("expected overwritten content, got %q", v)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}

	if !c.Delete("a") {
		t.Fatal("Delete(a) reported missing")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) should report missing")
	}
	if got, want := c.Titles(), []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Titles() after delete = %v, want %v", got, want)
	}
}

func TestCollection_ZeroValue(t *testing.T) {
	var c Collection
	if c.Len() != 0 {
		t.Fatal("zero collection should be empty")
	}
	if _, ok := c.Get("x"); ok {
		t.Fatal("zero collection should not find anything")
	}
	c.Set("x", "y")
	if v, ok := c.Get("x"); !ok || v != "y" {
		t.Errorf("Set on zero value failed: %q %v", v, ok)
	}
}

func TestCollection_TitlesIsCopy(t *testing.T) {
	c := NewCollection()
	c.Set("a", "")
	titles := c.Titles()
	titles[0] = "mutated"
	if c.Titles()[0] != "a" {
		t.Error("Titles() must not expose internal storage")
	}
}

func TestDiff(t *testing.T) {
	prev := NewCollection()
	prev.Set("keep", "same")
	prev.Set("edit", "old")
	prev.Set("gone", "bye")

	next := NewCollection()
	next.Set("keep", "same")
	next.Set("edit", "new")
	next.Set("fresh", "hi")

	got := Diff(prev, next, 42)
	want := []Event{
		{Type: EventModify, Title: "edit", Timestamp: 42},
		{Type: EventCreate, Title: "fresh", Timestamp: 42},
		{Type: EventDelete, Title: "gone", Timestamp: 42},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}

	if events := Diff(nil, nil, 0); len(events) != 0 {
		t.Errorf("Diff(nil, nil) should be empty, got %v", events)
	}
}
