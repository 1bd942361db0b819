package web

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MenuContainerID - элемент, в который вставляется меню
const MenuContainerID = "menu-container"

// HomePage - страница, активная для пустого имени файла
const HomePage = "index.html"

// NavEntry - пункт главного меню
type NavEntry struct {
	Href  string
	Icon  string
	Label string
}

// NavEntries - все известные страницы сайта в порядке вывода
var NavEntries = []NavEntry{
	{Href: "index.html", Icon: "fa-house", Label: "Trang chủ"},
	{Href: "tu-van.html", Icon: "fa-box-archive", Label: "Tư vấn"},
	{Href: "thong-tin.html", Icon: "fa-circle-info", Label: "Thông tin"},
}

// CurrentPage возвращает имя файла страницы из пути запроса; пустое имя означает главную
func CurrentPage(urlPath string) string {
	if urlPath == "" || strings.HasSuffix(urlPath, "/") {
		return HomePage
	}
	name := path.Base(urlPath)
	if name == "" || name == "." || name == "/" {
		return HomePage
	}
	return name
}

func navHTML() string {
	var b strings.Builder
	b.WriteString(`<nav class="main-nav"><ul>`)
	for _, e := range NavEntries {
		fmt.Fprintf(&b,
			`<li><a href="%s"><i class="fa-solid fa-fw %s"></i><span class="menu-text">%s</span></a></li>`,
			e.Href, e.Icon, e.Label)
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

// InjectNavigation заменяет содержимое #menu-container меню сайта
// и отмечает классом active ссылку на текущую страницу.
// Страница без контейнера возвращается без изменений.
func InjectNavigation(page []byte, urlPath string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	container := doc.Find("#" + MenuContainerID).First()
	if container.Length() == 0 {
		return page, nil
	}
	container.SetHtml(navHTML())

	current := CurrentPage(urlPath)
	container.Find("nav ul li a").Each(func(_ int, link *goquery.Selection) {
		if href, _ := link.Attr("href"); href == current {
			link.AddClass("active")
		}
	})

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize page: %w", err)
	}
	return []byte(out), nil
}
