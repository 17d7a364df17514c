// Package view renders page templates with a shared layout. Templates live in
// a templates/ directory next to the working directory; pages are wrapped in
// layout.html unless they are full documents.
package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vincentcui-ui/workout-logger/internal/auth"
	"github.com/vincentcui-ui/workout-logger/internal/flash"
)

var (
	dirMu    sync.RWMutex
	baseDir  = detectBase()
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() string {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			return filepath.Clean(c)
		}
	}
	return "templates"
}

func base() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return baseDir
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	dirMu.Lock()
	baseDir = filepath.Clean(path)
	dirMu.Unlock()
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// Funcs returns the standard template func map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year":    func() int { return time.Now().Year() },
		"fmtDate": func(t time.Time) string { return t.Format("2006-01-02") },
		// json marshals a value for embedding in inline scripts (chart series).
		"json": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
	}
}

// Render parses and executes a single template file with shared funcs.
// name should be the filename (e.g., "list_workouts.html"). Pending flash
// messages and login state are injected unless the caller already set them.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Flashes"]; !exists {
		data["Flashes"] = flash.Take(w, r)
	}

	t, err := load(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write(buf.Bytes())
	return err
}

func load(name string) (*template.Template, error) {
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return t, nil
		}
	}

	dir := base()
	mainPath := filepath.Join(dir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return nil, err
	}

	var t *template.Template
	layoutPath := filepath.Join(dir, "layout.html")
	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := true
	if bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype")) {
		// Full document provided; skip layout wrapping.
		useLayout = false
	}
	if useLayout {
		if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
			parsed, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(layoutPath, mainPath)
			if err != nil {
				return nil, err
			}
			t = parsed
		} else {
			useLayout = false
		}
	}
	if !useLayout {
		parsed, err := template.New(name).Funcs(Funcs()).ParseFiles(mainPath)
		if err != nil {
			return nil, err
		}
		t = parsed
	}
	if t == nil {
		return nil, errors.New("template not loaded: " + name)
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t, nil
}
