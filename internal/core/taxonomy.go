package core

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yml
var taxonomyYAML []byte

type (
	CategoryInfo struct {
		Type          CategoryType `yaml:"type"`
		Label         string       `yaml:"label"`
		Color         string       `yaml:"color"`
		Subcategories []string     `yaml:"subcategories"`
	}

	// Taxonomy holds the display metadata of every category and the
	// abbreviated month names used in forecast labels.
	Taxonomy struct {
		Categories []CategoryInfo `yaml:"categories"`
		Months     []string       `yaml:"months"`

		byType map[CategoryType]*CategoryInfo
	}
)

var (
	defaultTaxonomy     *Taxonomy
	defaultTaxonomyOnce sync.Once
)

// DefaultTaxonomy returns the embedded taxonomy. It panics if the embedded
// document is broken, which can only happen at build time.
func DefaultTaxonomy() *Taxonomy {
	defaultTaxonomyOnce.Do(func() {
		t, err := ParseTaxonomy(taxonomyYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded taxonomy: %v", err))
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

// ParseTaxonomy decodes and checks a taxonomy document.
func ParseTaxonomy(b []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("unmarshal taxonomy: %w", err)
	}
	if len(t.Months) != 12 {
		return nil, fmt.Errorf("taxonomy must list 12 months, got %d", len(t.Months))
	}
	t.byType = make(map[CategoryType]*CategoryInfo, len(t.Categories))
	for i := range t.Categories {
		info := &t.Categories[i]
		if !info.Type.IsValid() {
			return nil, fmt.Errorf("%w in taxonomy: %q", ErrInvalidCategory, info.Type)
		}
		if len(info.Subcategories) == 0 {
			return nil, fmt.Errorf("category %s has no subcategories", info.Type)
		}
		t.byType[info.Type] = info
	}
	for _, c := range Categories() {
		if _, ok := t.byType[c]; !ok {
			return nil, fmt.Errorf("category %s missing from taxonomy", c)
		}
	}
	return &t, nil
}

// Label returns the display label of c, or its wire name when unknown.
func (t *Taxonomy) Label(c CategoryType) string {
	if info, ok := t.byType[c]; ok {
		return info.Label
	}
	return string(c)
}

func (t *Taxonomy) Color(c CategoryType) string {
	if info, ok := t.byType[c]; ok {
		return info.Color
	}
	return ""
}

func (t *Taxonomy) Subcategories(c CategoryType) []string {
	info, ok := t.byType[c]
	if !ok {
		return nil
	}
	return append([]string(nil), info.Subcategories...)
}

// DefaultSubcategory is the first subcategory of c.
func (t *Taxonomy) DefaultSubcategory(c CategoryType) string {
	if info, ok := t.byType[c]; ok {
		return info.Subcategories[0]
	}
	return ""
}

func (t *Taxonomy) HasSubcategory(c CategoryType, sub string) bool {
	info, ok := t.byType[c]
	if !ok {
		return false
	}
	for _, s := range info.Subcategories {
		if s == sub {
			return true
		}
	}
	return false
}

// DayLabel formats a day as "05 out".
func (t *Taxonomy) DayLabel(d time.Time) string {
	return fmt.Sprintf("%02d %s", d.Day(), t.Months[int(d.Month())-1])
}
