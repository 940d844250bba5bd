package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ludokit/ludokit/core"
)

const portalDetails = `{
	"id": 4200,
	"name": "Portal 2",
	"description": "<p>Portal 2 is a <b>first-person</b> puzzle game.</p>",
	"rating": 4.61,
	"released": "2011-04-18",
	"platforms": [
		{"platform": {"name": "PC"}},
		{"platform": {"name": "Xbox 360"}}
	],
	"genres": [{"name": "Shooter"}, {"name": "Puzzle"}],
	"developers": [{"name": "Valve Software"}],
	"publishers": [{"name": "Valve"}],
	"background_image": "https://img.example/portal2.jpg",
	"metacritic": 95,
	"esrb_rating": {"name": "Everyone 10+"}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("search") == "nothing" {
			fmt.Fprint(w, `{"count": 0, "results": []}`)
			return
		}
		fmt.Fprint(w, `{"count": 2, "results": [{"id": 4200, "name": "Portal 2"}, {"id": 4201, "name": "Portal"}]}`)
	})
	mux.HandleFunc("/games/4200", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, portalDetails)
	})
	mux.HandleFunc("/games/4201", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 4201, "name": "Portal", "rating": 4.5, "released": "2007-10-09",
			"genres": [{"name": "Puzzle"}], "platforms": [{"platform": {"name": "PC"}}]}`)
	})
	return httptest.NewServer(mux)
}

func testClient(srv *httptest.Server) *Client {
	return &Client{BaseURL: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	g, err := testClient(srv).Search(context.Background(), "portal 2")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if g.Name != "Portal 2" {
		t.Errorf("Name = %q, want Portal 2", g.Name)
	}
	if g.Rating != 4.61 {
		t.Errorf("Rating = %v, want 4.61", g.Rating)
	}
	if g.Released != "2011-04-18" {
		t.Errorf("Released = %q, want 2011-04-18", g.Released)
	}
	// 嵌套平台/类型被拍平
	if len(g.Platforms) != 2 || g.Platforms[0] != "PC" {
		t.Errorf("Platforms = %v, want [PC, Xbox 360]", g.Platforms)
	}
	if len(g.Genres) != 2 || g.Genres[1] != "Puzzle" {
		t.Errorf("Genres = %v, want [Shooter, Puzzle]", g.Genres)
	}
	// 描述去掉 HTML 标签
	if g.Description != "Portal 2 is a first-person puzzle game." {
		t.Errorf("Description = %q", g.Description)
	}
	if g.ESRBRating != "Everyone 10+" {
		t.Errorf("ESRBRating = %q", g.ESRBRating)
	}
	if g.Metacritic != 95 {
		t.Errorf("Metacritic = %d, want 95", g.Metacritic)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	_, err := testClient(srv).Search(context.Background(), "nothing")
	if !core.IsNotFound(err) {
		t.Errorf("Search() error = %v, want no-results", err)
	}
}

func TestSearchAll(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	games, err := testClient(srv).SearchAll(context.Background(), "portal", 2)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	// 并发取详情，结果仍按检索顺序
	if games[0].Name != "Portal 2" || games[1].Name != "Portal" {
		t.Errorf("games = [%s, %s], want [Portal 2, Portal]", games[0].Name, games[1].Name)
	}
}

func TestSearchHTTPError(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := testClient(srv)
	c.APIKey = "wrong"
	if _, err := c.Search(context.Background(), "portal"); err == nil {
		t.Error("Search() with bad key should fail")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "no markup", "no markup"},
		{"tags removed", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"breaks to newlines", "line one<br>line two", "line one\nline two"},
		{"paragraphs", "<p>first</p><p>second</p>", "first\n\nsecond"},
		{"entities", "rock &amp; roll &lt;3", "rock & roll <3"},
		{"trimmed", "<p>  padded  </p>", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
