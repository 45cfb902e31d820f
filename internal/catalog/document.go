package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-landing/internal/identity"
	"github.com/goliatone/go-landing/internal/validation"
)

//go:embed entry.schema.json
var entrySchemaJSON []byte

var (
	entrySchemaOnce sync.Once
	entrySchema     *validation.Schema
	entrySchemaErr  error
)

func documentSchema() (*validation.Schema, error) {
	entrySchemaOnce.Do(func() {
		entrySchema, entrySchemaErr = validation.CompileBytes(entrySchemaJSON)
	})
	return entrySchema, entrySchemaErr
}

// ParseDocument reads a section document: YAML front matter describing the
// entry, followed by a markdown body used as its description.
func ParseDocument(r io.Reader) (*Entry, error) {
	var meta yaml.Node
	body, err := frontmatter.Parse(r, &meta, frontmatter.NewFormat("---", "---", yaml.Unmarshal))
	if err != nil {
		return nil, fmt.Errorf("%w: front matter: %v", ErrInvalidDocument, err)
	}

	// key order matters for localized defaults, so the tree is encoded
	// straight from the node instead of through a map
	encoded, err := nodeJSON(&meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	entry := &Entry{}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	entry.Description = strings.TrimSpace(string(body))

	if err := normalizeEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// LoadFS parses every *.md document under dir, ordered by position then key.
func LoadFS(fsys fs.FS, dir string) ([]*Entry, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(matches))
	seen := map[string]string{}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", name, err)
		}
		entry, err := ParseDocument(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if previous, ok := seen[entry.Key]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateEntry, entry.Key, previous, name)
		}
		seen[entry.Key] = name
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Position != entries[j].Position {
			return entries[i].Position < entries[j].Position
		}
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

func normalizeEntry(entry *Entry) error {
	key := NormalizeKey(entry.Key)
	if key == "" {
		return ErrEntryKeyRequired
	}
	entry.Key = key
	if !entry.HasVariant(StandardVariant) {
		return ErrStandardVariant
	}
	if entry.ID == uuid.Nil {
		entry.ID = identity.SectionLibraryUUID(key)
	}
	return nil
}

// NormalizeKey lowercases and slugifies a section key. Underscores are kept.
func NormalizeKey(key string) string {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "_")
	for i, part := range parts {
		normalized, err := slug.Normalize(part)
		if err != nil || normalized == "" {
			return trimmed
		}
		parts[i] = normalized
	}
	return strings.Join(parts, "_")
}

// nodeJSON encodes a YAML tree as JSON keeping mapping keys in document
// order.
func nodeJSON(node *yaml.Node) ([]byte, error) {
	switch node.Kind {
	case 0:
		return []byte("{}"), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return []byte("{}"), nil
		}
		return nodeJSON(node.Content[0])
	case yaml.AliasNode:
		return nodeJSON(node.Alias)
	case yaml.MappingNode:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return nil, err
			}
			value, err := nodeJSON(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case yaml.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			value, err := nodeJSON(child)
			if err != nil {
				return nil, err
			}
			buf.Write(value)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		var scalar any
		if err := node.Decode(&scalar); err != nil {
			return nil, err
		}
		return json.Marshal(scalar)
	}
}
