package catalog

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludokit/ludokit/core"
)

func exportGame(name string) *core.Game {
	return &core.Game{
		Name:        name,
		Description: "a game",
		Released:    "2011-04-18",
		Platforms:   []string{"PC", "Xbox 360"},
	}
}

func TestAppendCSV(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir}

	if err := e.AppendCSV(exportGame("Portal 2")); err != nil {
		t.Fatalf("AppendCSV() error = %v", err)
	}
	if err := e.AppendCSV(exportGame("Braid")); err != nil {
		t.Fatalf("AppendCSV() error = %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "game_info.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	// 表头只写一次
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2 records", len(rows))
	}
	if rows[0][0] != "name" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Portal 2" || rows[2][0] != "Braid" {
		t.Errorf("records = %v, %v", rows[1], rows[2])
	}
	if rows[1][3] != "PC, Xbox 360" {
		t.Errorf("platforms column = %q, want joined list", rows[1][3])
	}
}

func TestAppendJSON(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir}

	if err := e.AppendJSON([]*core.Game{exportGame("Portal 2")}); err != nil {
		t.Fatalf("AppendJSON() error = %v", err)
	}
	if err := e.AppendJSON([]*core.Game{exportGame("Braid")}); err != nil {
		t.Fatalf("AppendJSON() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "game_info.json"))
	if err != nil {
		t.Fatal(err)
	}
	var games []*core.Game
	if err := json.Unmarshal(data, &games); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2 after two appends", len(games))
	}
	if games[0].Name != "Portal 2" || games[1].Name != "Braid" {
		t.Errorf("games = [%s, %s]", games[0].Name, games[1].Name)
	}
}

func TestAppendJSONCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game_info.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &Exporter{Dir: dir}
	if err := e.AppendJSON([]*core.Game{exportGame("Portal 2")}); err != nil {
		t.Fatalf("AppendJSON() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	var games []*core.Game
	if err := json.Unmarshal(data, &games); err != nil {
		t.Fatalf("file still corrupt after append: %v", err)
	}
	if len(games) != 1 {
		t.Errorf("len(games) = %d, want 1 (corrupt history dropped)", len(games))
	}
}

func TestAppendNilAndEmpty(t *testing.T) {
	e := &Exporter{Dir: t.TempDir()}
	if err := e.AppendCSV(nil); err != nil {
		t.Errorf("AppendCSV(nil) error = %v", err)
	}
	if err := e.AppendJSON(nil); err != nil {
		t.Errorf("AppendJSON(nil) error = %v", err)
	}
}
