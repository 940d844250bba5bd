package ocr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ludokit/ludokit/core"
)

func newOCRServer(t *testing.T, handler http.HandlerFunc) *SpaceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewSpaceClient("key-1")
	c.Endpoint = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func TestExtractText(t *testing.T) {
	c := newOCRServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("apikey"); got != "key-1" {
			t.Errorf("apikey = %q, want key-1", got)
		}
		if got := r.FormValue("language"); got != "eng" {
			t.Errorf("language = %q, want eng", got)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("image file missing: %v", err)
		}
		fmt.Fprint(w, `{"ParsedResults": [{"ParsedText": "Portal 2\nValve"}], "OCRExitCode": 1}`)
	})

	text, err := c.ExtractText(context.Background(), []byte("fake-jpg"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	// 换行压成空格
	if text != "Portal 2 Valve" {
		t.Errorf("text = %q, want %q", text, "Portal 2 Valve")
	}
}

func TestExtractTextKeyRotation(t *testing.T) {
	c := newOCRServer(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		// 第一把 Key 限流，第二把成功
		if r.FormValue("apikey") == "limited" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"ParsedResults": [{"ParsedText": "Braid"}]}`)
	})
	c.Keys = []string{"limited", "good"}

	text, err := c.ExtractText(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "Braid" {
		t.Errorf("text = %q, want Braid", text)
	}
}

func TestExtractTextNoText(t *testing.T) {
	c := newOCRServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ParsedResults": [{"ParsedText": ""}]}`)
	})

	_, err := c.ExtractText(context.Background(), []byte("img"))
	if !errors.Is(err, ErrNoText) && !core.IsNotFound(err) {
		t.Errorf("ExtractText() error = %v, want ErrNoText", err)
	}
}

func TestExtractTextAllKeysFail(t *testing.T) {
	c := newOCRServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.ExtractText(context.Background(), []byte("img")); err == nil {
		t.Error("ExtractText() with failing backend should error")
	}
}

func TestExtractTextProcessingError(t *testing.T) {
	c := newOCRServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"IsErroredOnProcessing": true, "ErrorMessage": ["bad image"]}`)
	})

	if _, err := c.ExtractText(context.Background(), []byte("img")); err == nil {
		t.Error("ExtractText() with processing error should fail")
	}
}

func TestExtractTextNoKeys(t *testing.T) {
	c := &SpaceClient{}
	if _, err := c.ExtractText(context.Background(), []byte("img")); err == nil {
		t.Error("ExtractText() without keys should fail")
	}
}
