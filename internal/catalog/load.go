package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aishort/showcase-server/internal/color"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/util"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned for catalog data that fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// file is the on-disk catalog layout shared by the YAML and JSON formats.
type file struct {
	Tags    []domain.Tag         `json:"tags" yaml:"tags"`
	Entries []domain.PromptEntry `json:"entries" yaml:"entries"`
}

// Format selects the decoder for catalog data.
type Format string

// Supported catalog formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Load reads a catalog from path. The format is chosen from the extension;
// anything other than .json is decoded as YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Catalog path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, format)
}

// Parse decodes catalog data in the given format.
func Parse(data []byte, format Format) (*Catalog, error) {
	var f file
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode catalog json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode catalog yaml: %w", err)
		}
	}
	f.canonicalize()
	return New(domain.NewTagRegistry(f.Tags...), f.Entries)
}

// canonicalize normalizes tag ids in place and fills in missing tag colors.
func (f *file) canonicalize() {
	for i := range f.Tags {
		t := &f.Tags[i]
		t.ID = domain.TagID(util.NormalizeTagID(string(t.ID)))
		if t.Color == "" {
			t.Color = color.ForTag(string(t.ID))
		}
	}
	for i := range f.Entries {
		for j, id := range f.Entries[i].Tags {
			f.Entries[i].Tags[j] = domain.TagID(util.NormalizeTagID(string(id)))
		}
	}
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatYAML)
}

func validate(tags *domain.TagRegistry, entries []domain.PromptEntry) error {
	for _, t := range tags.All() {
		if t.ID == "" {
			return fmt.Errorf("%w: tag %q has an empty id", ErrInvalidCatalog, t.Label)
		}
	}

	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate entry id %d", ErrInvalidCatalog, e.ID)
		}
		seen[e.ID] = struct{}{}

		if len(e.Content) == 0 {
			return fmt.Errorf("%w: entry %d has no content", ErrInvalidCatalog, e.ID)
		}
		for l := range e.Content {
			if !l.Valid() {
				return fmt.Errorf("%w: entry %d uses unsupported locale %q", ErrInvalidCatalog, e.ID, l)
			}
		}

		tagSeen := make(map[domain.TagID]struct{}, len(e.Tags))
		for _, t := range e.Tags {
			if !tags.Has(t) {
				return fmt.Errorf("%w: entry %d uses unknown tag %q", ErrInvalidCatalog, e.ID, t)
			}
			if _, dup := tagSeen[t]; dup {
				return fmt.Errorf("%w: entry %d repeats tag %q", ErrInvalidCatalog, e.ID, t)
			}
			tagSeen[t] = struct{}{}
		}
	}
	return nil
}
