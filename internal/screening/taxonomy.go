package screening

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// RoleProfile lists the core and secondary skills configured for a job role.
type RoleProfile struct {
	Name      string   `yaml:"name" json:"name"`
	Core      []string `yaml:"core" json:"core"`
	Secondary []string `yaml:"secondary" json:"secondary"`
}

// Skills returns core followed by secondary skills.
func (p RoleProfile) Skills() []string {
	out := make([]string, 0, len(p.Core)+len(p.Secondary))
	out = append(out, p.Core...)
	return append(out, p.Secondary...)
}

type taxonomyFile struct {
	Roles          []RoleProfile `yaml:"roles"`
	Degrees        []string      `yaml:"degrees"`
	Certifications []string      `yaml:"certifications"`
}

// Taxonomy is the read-only role table plus the education keyword lists.
// It is built once and never mutated, so it is safe to share between goroutines.
type Taxonomy struct {
	roles          map[string]RoleProfile
	order          []string
	degrees        []string
	certifications []string
}

// DefaultTaxonomy parses the embedded taxonomy.
func DefaultTaxonomy() (*Taxonomy, error) {
	return ParseTaxonomy(defaultTaxonomy)
}

// LoadTaxonomy reads a taxonomy file. An empty path yields the embedded default.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTaxonomy()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	t, err := ParseTaxonomy(raw)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}

// ParseTaxonomy decodes and validates a YAML taxonomy.
func ParseTaxonomy(raw []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return NewTaxonomy(file.Roles, file.Degrees, file.Certifications)
}

// NewTaxonomy validates the given profiles and keyword lists and returns an immutable table.
func NewTaxonomy(roles []RoleProfile, degrees, certifications []string) (*Taxonomy, error) {
	if len(roles) == 0 {
		return nil, errors.New("taxonomy has no roles")
	}
	t := &Taxonomy{
		roles:          make(map[string]RoleProfile, len(roles)),
		order:          make([]string, 0, len(roles)),
		degrees:        cleanKeywords(degrees),
		certifications: cleanKeywords(certifications),
	}
	for i, role := range roles {
		key := roleKey(role.Name)
		if key == "" {
			return nil, fmt.Errorf("roles[%d]: name is required", i)
		}
		if _, dup := t.roles[key]; dup {
			return nil, fmt.Errorf("roles[%d]: duplicate role %q", i, key)
		}
		core, err := cleanSkills(role.Core)
		if err != nil {
			return nil, fmt.Errorf("role %q core: %w", key, err)
		}
		secondary, err := cleanSkills(role.Secondary)
		if err != nil {
			return nil, fmt.Errorf("role %q secondary: %w", key, err)
		}
		if len(core) == 0 && len(secondary) == 0 {
			return nil, fmt.Errorf("role %q has no skills", key)
		}
		if overlap := intersect(core, secondary); len(overlap) > 0 {
			return nil, fmt.Errorf("role %q lists %s in both tiers", key, strings.Join(overlap, ", "))
		}
		t.roles[key] = RoleProfile{Name: key, Core: core, Secondary: secondary}
		t.order = append(t.order, key)
	}
	return t, nil
}

// Lookup returns the profile for a role name, ignoring case and surrounding space.
func (t *Taxonomy) Lookup(role string) (RoleProfile, error) {
	if t != nil {
		if p, ok := t.roles[roleKey(role)]; ok {
			return p, nil
		}
	}
	return RoleProfile{}, &UnknownRoleError{Role: role, Known: t.RoleNames()}
}

// Roles returns every profile in configured order.
func (t *Taxonomy) Roles() []RoleProfile {
	if t == nil {
		return nil
	}
	out := make([]RoleProfile, 0, len(t.order))
	for _, name := range t.order {
		p := t.roles[name]
		out = append(out, RoleProfile{
			Name:      p.Name,
			Core:      append([]string(nil), p.Core...),
			Secondary: append([]string(nil), p.Secondary...),
		})
	}
	return out
}

// RoleNames returns the configured role keys sorted alphabetically.
func (t *Taxonomy) RoleNames() []string {
	if t == nil {
		return nil
	}
	names := append([]string(nil), t.order...)
	sort.Strings(names)
	return names
}

// Degrees returns the degree keywords.
func (t *Taxonomy) Degrees() []string { return append([]string(nil), t.degrees...) }

// Certifications returns the certification keywords.
func (t *Taxonomy) Certifications() []string { return append([]string(nil), t.certifications...) }

func roleKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func cleanSkills(skills []string) ([]string, error) {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		skill := strings.ToLower(strings.Join(strings.Fields(s), " "))
		if skill == "" {
			return nil, errors.New("empty skill")
		}
		if seen[skill] {
			return nil, fmt.Errorf("duplicate skill %q", skill)
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out, nil
}

func cleanKeywords(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		kw := strings.ToLower(strings.TrimSpace(item))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	var out []string
	for _, s := range b {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
