package facts_test

import (
	"testing"

	"github.com/maitredhq/maitred/internal/facts"
	"github.com/maitredhq/maitred/memory"
)

func single(t *testing.T, text, knownName string) facts.Fact {
	t.Helper()
	got := facts.Extract(text, knownName)
	if len(got) != 1 {
		t.Fatalf("expected 1 fact for %q, got %v", text, got)
	}
	return got[0]
}

func TestExtract_Name(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"My name is Ana", "Ana"},
		{"my name is Sam, nice to meet you", "Sam"},
		{"Please call me Bob", "Bob"},
		{"I'm Maria", "Maria"},
		{"I am Jean-Luc", "Jean-Luc"},
	}
	for _, c := range cases {
		f := single(t, c.text, "")
		if f.Key != memory.KeyUserName || f.Value != c.want {
			t.Errorf("%q: got %+v, want user_name:%s", c.text, f, c.want)
		}
	}
}

func TestExtract_NameStoplist(t *testing.T) {
	// A question word is never a name.
	if got := facts.Extract("my name is what exactly?", ""); len(got) != 0 {
		t.Fatalf("stoplisted candidate with no known name should yield nothing, got %v", got)
	}
	// With a known name, the stoplisted candidate falls back to it and is
	// then dropped as a duplicate.
	if got := facts.Extract("my name is what exactly?", "Ana"); len(got) != 0 {
		t.Fatalf("stoplisted candidate should not supersede known name, got %v", got)
	}
}

func TestExtract_NameDedupIsCaseInsensitive(t *testing.T) {
	if got := facts.Extract("my name is Ana", "ana"); len(got) != 0 {
		t.Fatalf("same name in different case must be a no-op, got %v", got)
	}
	// A genuinely new name is still extracted.
	f := single(t, "my name is Sam", "Ana")
	if f.Value != "Sam" {
		t.Fatalf("got %+v", f)
	}
}

func TestExtract_DietaryBeatsName(t *testing.T) {
	f := single(t, "I'm vegan", "")
	if f.Key != memory.KeyDietary || f.Value != "vegan" {
		t.Fatalf("got %+v, want dietary:vegan", f)
	}
	// Capitalized dietary statements must not leak into the name rule.
	f = single(t, "I'm Vegetarian", "")
	if f.Key != memory.KeyDietary {
		t.Fatalf("got %+v, want dietary fact", f)
	}
}

func TestExtract_LikesAndDislikes(t *testing.T) {
	f := single(t, "I like spicy food", "")
	if f.Key != memory.KeyPreference || f.Value != "spicy food" {
		t.Fatalf("got %+v", f)
	}

	f = single(t, "I don't like olives", "")
	if f.Key != memory.KeyDislike || f.Value != "olives" {
		t.Fatalf("got %+v", f)
	}

	got := facts.Extract("I like pasta. I don't like olives", "")
	if len(got) != 2 {
		t.Fatalf("expected like + dislike, got %v", got)
	}
}

func TestExtract_Allergy(t *testing.T) {
	f := single(t, "I'm allergic to peanuts", "")
	if f.Key != memory.KeyAllergy || f.Value != "peanuts" {
		t.Fatalf("got %+v", f)
	}
}

func TestExtract_Note(t *testing.T) {
	f := single(t, "Remember that we close early on Sundays", "")
	if f.Key != memory.KeyNote || f.Value != "we close early on Sundays" {
		t.Fatalf("got %+v", f)
	}
}

func TestExtract_MultipleKeysOneUtterance(t *testing.T) {
	got := facts.Extract("My name is Sam. What do you recommend?", "")
	if len(got) != 1 || got[0].Key != memory.KeyUserName || got[0].Value != "Sam" {
		t.Fatalf("got %v", got)
	}

	got = facts.Extract("I'm vegan and my name is Ana", "")
	keys := map[string]string{}
	for _, f := range got {
		keys[f.Key] = f.Value
	}
	if keys[memory.KeyDietary] != "vegan" || keys[memory.KeyUserName] != "Ana" {
		t.Fatalf("got %v", got)
	}
}

func TestExtract_NothingDurable(t *testing.T) {
	if got := facts.Extract("What's on the menu today?", ""); len(got) != 0 {
		t.Fatalf("expected no facts, got %v", got)
	}
}

func TestImportanceFor(t *testing.T) {
	if facts.ImportanceFor(memory.KeyUserName) != 4 {
		t.Error("names are high-importance")
	}
	if facts.ImportanceFor(memory.KeyPreference) != 2 {
		t.Error("preferences default to 2")
	}
}
