// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnknownIndustry is returned by Industry when the tag has no catalogue
// entry and the fallback is disabled.
var ErrUnknownIndustry = errors.New("UNKNOWN_INDUSTRY")

// GeneralTag is the always-present fallback industry.
const GeneralTag = "general"

// Load reads a catalogue from a JSON file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Industry returns the profile for a tag, falling back to the general
// profile for unknown tags unless Strict is set.
func (c *Catalog) Industry(tag string) (*IndustryProfile, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i := range c.Industries {
		if c.Industries[i].Tag == tag {
			return &c.Industries[i], nil
		}
	}
	if !c.Strict {
		for i := range c.Industries {
			if c.Industries[i].Tag == GeneralTag {
				return &c.Industries[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownIndustry, tag)
}

// Validate checks structural invariants: unique tags, a general entry,
// unique question ids per industry, and sane template fields.
func (c *Catalog) Validate() error {
	if len(c.Industries) == 0 {
		return errors.New("catalog has no industries")
	}
	tags := make(map[string]bool)
	hasGeneral := false
	for _, ind := range c.Industries {
		if ind.Tag == "" {
			return errors.New("industry with empty tag")
		}
		if tags[ind.Tag] {
			return fmt.Errorf("duplicate industry tag: %s", ind.Tag)
		}
		tags[ind.Tag] = true
		if ind.Tag == GeneralTag {
			hasGeneral = true
		}
		ids := make(map[string]bool)
		for _, q := range ind.Questions {
			if q.ID == "" || q.Text == "" {
				return fmt.Errorf("industry %s: question with empty id or text", ind.Tag)
			}
			if ids[q.ID] {
				return fmt.Errorf("industry %s: duplicate question id %s", ind.Tag, q.ID)
			}
			ids[q.ID] = true
			if q.Gap == "" && q.EmitBelowQuality == 0 {
				return fmt.Errorf("industry %s: question %s has no emit condition", ind.Tag, q.ID)
			}
		}
	}
	if !hasGeneral {
		return errors.New("catalog missing general industry")
	}
	return nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
