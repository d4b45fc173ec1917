// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note reads card notes: Markdown files whose YAML frontmatter holds
// the card annotation.
package note

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cardgrabber/pkg/types"
)

const (
	// Ext is the file extension of a note.
	Ext = ".md"

	delimiter = "---"
)

// Read parses the frontmatter of the note at path. A note without
// frontmatter yields an empty annotation. Unterminated frontmatter and
// invalid YAML are errors.
func Read(path string) (types.RawAnnotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading note: %w", err)
	}
	ann, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing note %s: %w", path, err)
	}
	return ann, nil
}

// Parse extracts and decodes the frontmatter block of a note body.
func Parse(data []byte) (types.RawAnnotation, error) {
	front, ok, err := frontmatter(data)
	if err != nil {
		return nil, err
	}
	ann := types.RawAnnotation{}
	if !ok {
		return ann, nil
	}
	if err := yaml.Unmarshal(front, &ann); err != nil {
		return nil, fmt.Errorf("decoding frontmatter: %w", err)
	}
	if ann == nil {
		ann = types.RawAnnotation{}
	}
	return ann, nil
}

// frontmatter returns the text between the opening and closing "---" lines.
// ok is false when the note does not start with a delimiter.
func frontmatter(data []byte) (front []byte, ok bool, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	if !sc.Scan() || strings.TrimRight(sc.Text(), " \t\r") != delimiter {
		return nil, false, nil
	}

	var buf bytes.Buffer
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimRight(line, " \t") == delimiter {
			return buf.Bytes(), true, nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, false, fmt.Errorf("scanning frontmatter: %w", err)
	}
	return nil, false, fmt.Errorf("frontmatter is not terminated by %q", delimiter)
}

// Discover returns the paths of all notes under root, recursively, in
// lexical order so that runs are reproducible on every platform.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), Ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering notes in %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
