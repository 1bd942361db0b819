package web

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shell = `<!DOCTYPE html><html><head><title>t</title></head><body><div id="menu-container">old</div><p>body</p></body></html>`

func parse(t *testing.T, page []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestCurrentPage(t *testing.T) {
	cases := map[string]string{
		"":                     "index.html",
		"/":                    "index.html",
		"/index.html":          "index.html",
		"/tu-van.html":         "tu-van.html",
		"/site/thong-tin.html": "thong-tin.html",
		"/site/":               "index.html",
	}
	for in, want := range cases {
		assert.Equal(t, want, CurrentPage(in), in)
	}
}

func TestInjectNavigationMarksActivePage(t *testing.T) {
	tests := []struct {
		path   string
		active string
	}{
		{"/", "index.html"},
		{"/index.html", "index.html"},
		{"/tu-van.html", "tu-van.html"},
		{"/thong-tin.html", "thong-tin.html"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out, err := InjectNavigation([]byte(shell), tt.path)
			require.NoError(t, err)
			doc := parse(t, out)

			links := doc.Find("#menu-container nav.main-nav ul li a")
			require.Equal(t, len(NavEntries), links.Length())
			assert.Equal(t, 1, doc.Find("#menu-container a.active").Length())

			href, _ := doc.Find("#menu-container a.active").Attr("href")
			assert.Equal(t, tt.active, href)
			assert.NotContains(t, doc.Find("#menu-container").Text(), "old")
			assert.Equal(t, "body", doc.Find("p").Text())
		})
	}
}

func TestInjectNavigationUnknownPageHasNoActiveEntry(t *testing.T) {
	out, err := InjectNavigation([]byte(shell), "/other.html")
	require.NoError(t, err)
	doc := parse(t, out)
	assert.Equal(t, 3, doc.Find("#menu-container li").Length())
	assert.Equal(t, 0, doc.Find("a.active").Length())
}

func TestInjectNavigationWithoutContainerIsNoop(t *testing.T) {
	page := []byte(`<html><body><p>plain</p></body></html>`)
	out, err := InjectNavigation(page, "/")
	require.NoError(t, err)
	assert.Equal(t, page, out)
}

func TestNavEntriesContent(t *testing.T) {
	out, err := InjectNavigation([]byte(shell), "/")
	require.NoError(t, err)
	doc := parse(t, out)

	var labels []string
	doc.Find(".menu-text").Each(func(_ int, s *goquery.Selection) { labels = append(labels, s.Text()) })
	assert.Equal(t, []string{"Trang chủ", "Tư vấn", "Thông tin"}, labels)
	assert.True(t, doc.Find("a[href='tu-van.html'] i").HasClass("fa-box-archive"))
}
