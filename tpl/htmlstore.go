package tpl

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const FileSuffix = ".gohtml"

// HTMLTemplateStore keys templates by their path under the template
// root, extension stripped: templates/html/cards/preview.gohtml is
// "cards/preview".
type HTMLTemplateStore struct {
	Base map[string]*template.Template // one file, one template
}

func NewHTMLTemplateStore() *HTMLTemplateStore {
	return &HTMLTemplateStore{
		Base: make(map[string]*template.Template),
	}
}

func (s *HTMLTemplateStore) LoadBaseTemplates(tplRoot string) error {
	tplRoot = filepath.Clean(tplRoot)
	err := filepath.WalkDir(
		tplRoot,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			// skip hidden files and whole hidden directories
			if strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, FileSuffix) {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("template %s is not valid UTF-8", path)
			}
			rel, _ := filepath.Rel(tplRoot, path)
			key := strings.TrimSuffix(filepath.ToSlash(rel), FileSuffix)
			if _, exists := s.Base[key]; exists {
				return fmt.Errorf("duplicate template key %s (file=%s)", key, path)
			}
			t, err := template.New(key).Parse(string(data))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			s.Base[key] = t
			return nil
		},
	)
	if err != nil {
		return err
	}
	log.Printf("[INFO][tpl] loaded %d templates from %s", len(s.Base), tplRoot)
	return nil
}
