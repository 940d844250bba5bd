package rerank

import (
	"context"
	"testing"

	"github.com/ludokit/ludokit/core"
)

func item(name string, genres ...string) *core.Item {
	return core.NewItem(name).WithGame(&core.Game{Name: name, Genres: genres})
}

func TestTopN(t *testing.T) {
	items := []*core.Item{item("a"), item("b"), item("c")}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"larger than input", 10, 3},
		{"zero means all", 0, 3},
		{"negative means all", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopN{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len(out) = %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestTopNKeepsOrder(t *testing.T) {
	node := &TopN{N: 2}
	out, err := node.Process(context.Background(), nil, []*core.Item{item("first"), item("second"), item("third")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Errorf("out = [%s, %s], want [first, second]", out[0].ID, out[1].ID)
	}
}

func TestDiversity(t *testing.T) {
	node := &Diversity{}
	items := []*core.Item{
		item("Portal", "Puzzle"),
		item("Braid", "Puzzle", "Platformer"), // 首类型 Puzzle，与 Portal 重复
		item("Half-Life", "Shooter"),
		item("Mystery Thing"), // 无类型，直接保留
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"Portal", "Half-Life", "Mystery Thing"}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i, w := range want {
		if out[i].ID != w {
			t.Errorf("out[%d] = %s, want %s", i, out[i].ID, w)
		}
	}
}

func TestDiversityEmpty(t *testing.T) {
	node := &Diversity{}
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}
