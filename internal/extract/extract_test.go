// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>結婚相談所マリッジ | 30代のための婚活</title>
  <meta name="description" content="成婚率No.1の結婚相談所">
  <style>body { color: red }</style>
  <script>console.log("tracking")</script>
</head>
<body>
  <h1>理想のパートナーと出会う</h1>
  <h2>3ヶ月以内のデート成立率 92%</h2>
  <p>専任カウンセラーがあなたの婚活を  サポートします。</p>
  <noscript>JavaScriptを有効にしてください</noscript>
</body>
</html>`

func parse(t *testing.T, src string) Page {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return FromDocument(doc)
}

func TestFromDocument(t *testing.T) {
	p := parse(t, samplePage)

	if p.Title != "結婚相談所マリッジ | 30代のための婚活" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Description != "成婚率No.1の結婚相談所" {
		t.Errorf("description = %q", p.Description)
	}
	if len(p.Headings) != 2 || p.Headings[0] != "理想のパートナーと出会う" {
		t.Errorf("headings = %v", p.Headings)
	}
	if !strings.Contains(p.Text, "専任カウンセラー") {
		t.Errorf("body text missing: %q", p.Text)
	}
	if strings.Contains(p.Text, "tracking") || strings.Contains(p.Text, "color: red") {
		t.Errorf("script/style leaked into text: %q", p.Text)
	}
	if strings.Contains(p.Text, "JavaScriptを有効に") {
		t.Errorf("noscript leaked into text: %q", p.Text)
	}
	if p.Empty() {
		t.Error("page should not be empty")
	}
}

func TestEvidenceContainsAllParts(t *testing.T) {
	p := parse(t, samplePage)
	ev := p.Evidence()
	for _, want := range []string{"Title:", "Description:", "Heading:", "Body:"} {
		if !strings.Contains(ev, want) {
			t.Errorf("evidence missing %q:\n%s", want, ev)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	p, err := NewClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title == "" || len(p.Headings) == 0 {
		t.Errorf("fetched page incomplete: %+v", p)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("non-200 response should fail extraction")
	}
}

func TestClampRunes(t *testing.T) {
	long := strings.Repeat("あ", maxTextRunes+50)
	got := clampRunes(long, maxTextRunes)
	if len([]rune(got)) != maxTextRunes {
		t.Errorf("clamped length = %d", len([]rune(got)))
	}
}
