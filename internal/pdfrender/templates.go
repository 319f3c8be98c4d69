// Package pdfrender turns server-known HTML templates into PDF bytes
// with headless Chromium. Only file names on the embedded allow-list
// can be rendered; the request never supplies markup or a URL.
package pdfrender

import (
	"embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const templateDir = "templates"

var errUnknownTemplate = fmt.Errorf("unknown template")

// TemplateStore resolves allow-listed template names to their HTML.
// Templates ship embedded in the binary; when a base URL is configured
// the HTML is fetched from there instead, so content teams can edit
// templates without a redeploy. The allow-list stays embedded either way.
type TemplateStore struct {
	baseURL string
	client  *http.Client
	names   map[string]struct{}
}

// NewTemplateStore builds a store. baseURL may be empty.
func NewTemplateStore(baseURL string) (*TemplateStore, error) {
	entries, err := templateFS.ReadDir(templateDir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = struct{}{}
	}

	return &TemplateStore{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		names:   names,
	}, nil
}

// Names lists the allow-listed template file names, sorted.
func (s *TemplateStore) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Allowed reports whether fileName is on the allow-list. Path
// separators are rejected outright so traversal never reaches the FS.
func (s *TemplateStore) Allowed(fileName string) bool {
	if strings.ContainsAny(fileName, "/\\") || fileName != path.Base(fileName) {
		return false
	}
	_, ok := s.names[fileName]
	return ok
}

// HTML returns the markup for an allow-listed template.
func (s *TemplateStore) HTML(fileName string) (string, error) {
	if !s.Allowed(fileName) {
		return "", errUnknownTemplate
	}
	if s.baseURL == "" {
		data, err := templateFS.ReadFile(path.Join(templateDir, fileName))
		if err != nil {
			return "", fmt.Errorf("reading template %s: %w", fileName, err)
		}
		return string(data), nil
	}
	return s.fetch(fileName)
}

func (s *TemplateStore) fetch(fileName string) (string, error) {
	templateURL := s.baseURL + "/" + url.PathEscape(fileName)
	resp, err := s.client.Get(templateURL)
	if err != nil {
		return "", fmt.Errorf("fetching template %s: %w", fileName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching template %s: status %d", fileName, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", fileName, err)
	}
	return string(data), nil
}
