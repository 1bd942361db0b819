package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

var funcs = template.FuncMap{
	"mul": func(a, b int) int { return a * b },
}

// Renderer выводит страницы сайта: шаблон страницы внутри общего каркаса,
// затем в готовый документ вставляется меню.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageCatalog, PageConsulting, PageInfo} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render выполняет шаблон page и пишет результат в w.
// urlPath нужен меню, чтобы отметить текущую страницу.
func (r *Renderer) Render(w io.Writer, page, urlPath string, data interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page '%s'", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", page, err)
	}

	out, err := InjectNavigation(buf.Bytes(), urlPath)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Assets - статические файлы сайта (скрипт и стили)
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
