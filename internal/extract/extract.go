// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package extract fetches a landing page and reduces it to the text
// evidence the analysis stage feeds to the model: title, meta description,
// headings and visible body text. Extraction is best-effort; a fetch or
// parse failure yields an empty Page and the caller proceeds with the URL
// alone as reduced evidence.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxBodyBytes bounds how much of a landing page is read. Pages beyond
// this are truncated, not rejected.
const maxBodyBytes = 2 << 20

// maxTextRunes bounds the visible text passed downstream; model context
// is the scarce resource, not the page.
const maxTextRunes = 8000

// Page is the text evidence extracted from a landing page.
type Page struct {
	Title       string
	Description string
	Headings    []string
	Text        string
}

// Empty reports whether extraction produced no usable evidence.
func (p Page) Empty() bool {
	return p.Title == "" && p.Description == "" && len(p.Headings) == 0 && p.Text == ""
}

// Evidence renders the page as a compact block for inclusion in a prompt.
func (p Page) Evidence() string {
	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	for _, h := range p.Headings {
		fmt.Fprintf(&b, "Heading: %s\n", h)
	}
	if p.Text != "" {
		fmt.Fprintf(&b, "Body:\n%s\n", p.Text)
	}
	return b.String()
}

// Client fetches and parses landing pages.
type Client struct {
	http *http.Client
}

// NewClient creates a landing-page extraction client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 20 * time.Second},
	}
}

// Fetch downloads the landing page and extracts its text evidence.
func (c *Client) Fetch(ctx context.Context, url string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, fmt.Errorf("extract request: %w", err)
	}
	req.Header.Set("User-Agent", "slideforge/1.0 (+landing page analysis)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("extract fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("extract fetch: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Page{}, fmt.Errorf("extract parse: %w", err)
	}

	return FromDocument(doc), nil
}

// FromDocument extracts text evidence from a parsed HTML document.
func FromDocument(doc *html.Node) Page {
	var p Page
	var text strings.Builder
	walk(doc, &p, &text)
	p.Text = clampRunes(collapseWhitespace(text.String()), maxTextRunes)
	return p
}

func walk(n *html.Node, p *Page, text *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "svg", "iframe":
			return
		case "title":
			if p.Title == "" {
				p.Title = strings.TrimSpace(textContent(n))
			}
			return
		case "meta":
			if attr(n, "name") == "description" && p.Description == "" {
				p.Description = strings.TrimSpace(attr(n, "content"))
			}
			return
		case "h1", "h2", "h3":
			if h := collapseWhitespace(textContent(n)); h != "" {
				p.Headings = append(p.Headings, h)
			}
		}
	}

	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			text.WriteString(t)
			text.WriteByte(' ')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, p, text)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clampRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
