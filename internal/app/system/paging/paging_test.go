package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/blogs", nil)
	p := Parse(r)
	if p.Number != 1 || p.Limit != DefaultLimit || p.Skip != 0 {
		t.Errorf("defaults: got %+v", p)
	}
}

func TestParseValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/blogs?page=3&limit=10", nil)
	p := Parse(r)
	if p.Number != 3 {
		t.Errorf("page: got %d, want 3", p.Number)
	}
	if p.Limit != 10 {
		t.Errorf("limit: got %d, want 10", p.Limit)
	}
	if p.Skip != 20 {
		t.Errorf("skip: got %d, want 20", p.Skip)
	}
}

func TestParseInvalidSilentlyDefaults(t *testing.T) {
	tests := []string{
		"/api/blogs?page=abc&limit=xyz",
		"/api/blogs?page=-1&limit=0",
		"/api/blogs?page=&limit=",
	}
	for _, url := range tests {
		r := httptest.NewRequest("GET", url, nil)
		p := Parse(r)
		if p.Number != 1 || p.Limit != DefaultLimit {
			t.Errorf("%s: got %+v, want defaults", url, p)
		}
	}
}

func TestParseCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/blogs?limit=5000", nil)
	p := Parse(r)
	if p.Limit != MaxLimit {
		t.Errorf("limit: got %d, want %d", p.Limit, MaxLimit)
	}
}
