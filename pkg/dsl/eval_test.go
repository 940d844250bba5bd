package dsl

import (
	"testing"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pkg/utils"
)

func testItem() *core.Item {
	it := core.NewItem("Portal 2").WithGame(&core.Game{
		Name:      "Portal 2",
		Genres:    []string{"Puzzle", "Shooter"},
		Platforms: []string{"PC"},
		Rating:    4.6,
		Released:  "2011-04-18",
	})
	it.Score = 0.87
	it.PutLabel("recall_source", utils.Label{Value: "profile", Source: "recall"})
	return it
}

func testRctx() *core.RecommendContext {
	return &core.RecommendContext{
		SessionID:   "s1",
		RecentGames: []*core.Game{{Name: "Portal"}, {Name: "Braid"}},
		Params:      map[string]any{"category": "Puzzle"},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty is true", ``, true},
		{"rating compare", `game.rating >= 4.0`, true},
		{"rating compare false", `game.rating >= 4.7`, false},
		{"genre membership", `"Puzzle" in game.genres`, true},
		{"genre missing", `"Sports" in game.genres`, false},
		{"platform membership", `"PC" in game.platforms`, true},
		{"year from release date", `game.year >= 2010`, true},
		{"score", `item.score > 0.5`, true},
		{"item id", `item.id == "Portal 2"`, true},
		{"label lookup", `label.recall_source.value == "profile"`, true},
		{"recent membership", `"Portal" in rctx.recent`, true},
		{"session params", `rctx.params.category == "Puzzle"`, true},
		{"logical combination", `"Puzzle" in game.genres && game.rating >= 4.0`, true},
		{"negation", `!("Sports" in game.genres)`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(testItem(), testRctx()).Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	ev := NewEval(testItem(), testRctx())

	if _, err := ev.Evaluate(`game.rating >=`); err == nil {
		t.Error("malformed expression should fail compile")
	}
	if _, err := ev.Evaluate(`game.rating + 1.0`); err == nil {
		t.Error("non-boolean expression should be rejected")
	}
}

func TestEvaluateNilGame(t *testing.T) {
	it := core.NewItem("ghost")
	got, err := NewEval(it, nil).Evaluate(`item.id == "ghost"`)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !got {
		t.Error("item fields should work without game record")
	}
}
