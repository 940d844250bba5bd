package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludokit/ludokit/core"
)

// Exporter 把查询到的游戏记录追加到 CSV/JSON 落地文件。
// 这是查询链路的日志型副作用：推荐引擎不回读这些文件，
// 导出失败也不应中断查询流程（由调用方决定是否忽略错误）。
type Exporter struct {
	// Dir 落地目录，默认 "data"
	Dir string
}

var csvHeader = []string{"name", "description", "release_date", "platforms"}

// AppendCSV 将一条记录追加到 Dir/game_info.csv，文件不存在时先写表头。
func (e *Exporter) AppendCSV(g *core.Game) error {
	if g == nil {
		return nil
	}
	path := filepath.Join(e.dir(), "game_info.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	info, err := os.Stat(path)
	writeHeader := err != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	row := []string{
		g.Name,
		g.Description,
		g.Released,
		strings.Join(g.Platforms, ", "),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	w.Flush()
	return w.Error()
}

// AppendJSON 将一批记录合并进 Dir/game_info.json（维护一个 JSON 数组）。
// 文件为空/损坏时从空数组重新开始。
func (e *Exporter) AppendJSON(games []*core.Game) error {
	if len(games) == 0 {
		return nil
	}
	path := filepath.Join(e.dir(), "game_info.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export json: %w", err)
	}

	var existing []*core.Game
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		// 损坏的存量文件直接丢弃，从头累积
		_ = json.Unmarshal(data, &existing)
	}
	existing = append(existing, games...)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

func (e *Exporter) dir() string {
	if e.Dir == "" {
		return "data"
	}
	return e.Dir
}
