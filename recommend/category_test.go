package recommend

import (
	"testing"

	"github.com/ludokit/ludokit/core"
)

func TestEngine_FilterByCategory(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{portal(), portal2(), braid()})

	got := e.FilterByCategory("Puzzle", 4.0)

	// rating descending; boundary inclusive: Braid at exactly 4.0 stays in
	wantOrder := []string{"Portal 2", "Portal", "Braid"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d games, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestEngine_FilterByCategoryThreshold(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{portal(), portal2(), braid()})

	got := e.FilterByCategory("Puzzle", 4.6)
	if len(got) != 1 || got[0].Name != "Portal 2" {
		t.Errorf("FilterByCategory(4.6) = %v, want only Portal 2", names(got))
	}
}

func TestEngine_FilterByCategoryUnknown(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{portal()})

	if got := e.FilterByCategory("Sports", 0); len(got) != 0 {
		t.Errorf("unknown category returned %d games, want 0", len(got))
	}
}

func TestEngine_FilterByCategoryReturnsCopies(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{portal()})

	got := e.FilterByCategory("Puzzle", 0)
	got[0].Rating = 1.0
	got[0].Genres[0] = "mutated"

	g, _ := e.Game("Portal")
	if g.Rating != 4.5 || g.Genres[0] != "Puzzle" {
		t.Error("FilterByCategory leaked internal records")
	}
}

func TestEngine_RecommendByCategory(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{
		portal(), portal2(), braid(),
		{Name: "The Witness", Genres: []string{"Puzzle"}, Rating: 4.2, Released: "2016-01-26"},
		{Name: "Baba Is You", Genres: []string{"Puzzle"}, Rating: 4.6, Released: "2019-03-13"},
		{Name: "Anthem", Genres: []string{"Shooter"}, Rating: 2.9, Released: "2019-02-22"},
	})

	got := e.RecommendByCategory("Puzzle", 5)
	if len(got) == 0 {
		t.Fatal("RecommendByCategory returned nothing")
	}

	// seeds are the top 3 by rating (Portal 2, Baba Is You, Portal): they
	// must not appear in the output, and everything left is rated >= 4.0
	seeds := map[string]bool{"Portal 2": true, "Baba Is You": true, "Portal": true}
	for _, r := range got {
		if seeds[r.Name] {
			t.Errorf("seed game %s leaked into recommendations", r.Name)
		}
		if r.Rating < 4.0 {
			t.Errorf("%s rated %v, below the 4.0 post-filter", r.Name, r.Rating)
		}
		if r.Similarity == "" {
			t.Errorf("%s missing similarity annotation", r.Name)
		}
	}
}

func TestEngine_RecommendByCategoryEmpty(t *testing.T) {
	e := NewEngine()
	e.UpdateModel([]*core.Game{portal()})

	if got := e.RecommendByCategory("Sports", 5); len(got) != 0 {
		t.Errorf("empty category returned %d results", len(got))
	}
}

func names(games []*core.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}
