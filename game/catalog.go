package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Catalog holds every card template that can be drawn.
type Catalog struct {
	Units  []*UnitTemplate
	Spells []*SpellTemplate

	units  map[string]*UnitTemplate
	spells map[string]*SpellTemplate
}

type yamlAction struct {
	Name     string   `yaml:"name"`
	Range    string   `yaml:"range"`
	Keywords []string `yaml:"keywords"`
	Targets  []string `yaml:"targets"` // enemies | allies | self
}

type yamlUnit struct {
	Name    string       `yaml:"name"`
	Cost    int          `yaml:"cost"`
	Power   int          `yaml:"power"`
	Health  int          `yaml:"health"`
	Actions []yamlAction `yaml:"actions"`
}

type yamlSpell struct {
	Name     string   `yaml:"name"`
	Cost     int      `yaml:"cost"`
	Power    int      `yaml:"power"`
	Area     Area     `yaml:"area"`
	Keywords []string `yaml:"keywords"`
	Targets  []string `yaml:"targets"`
}

type yamlCatalog struct {
	Units  []yamlUnit  `yaml:"units"`
	Spells []yamlSpell `yaml:"spells"`
}

// DefaultCatalog returns the built-in card set.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

func LoadCatalogFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		units:  make(map[string]*UnitTemplate),
		spells: make(map[string]*SpellTemplate),
	}
	for _, ru := range raw.Units {
		t, err := ru.template()
		if err != nil {
			return nil, err
		}
		if err := c.AddUnit(t); err != nil {
			return nil, err
		}
	}
	for _, rs := range raw.Spells {
		t, err := rs.template()
		if err != nil {
			return nil, err
		}
		if err := c.AddSpell(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddUnit registers a unit template under its unique name.
func (c *Catalog) AddUnit(t *UnitTemplate) error {
	if c.units == nil {
		c.units = make(map[string]*UnitTemplate)
	}
	if _, ok := c.units[t.Name]; ok {
		return fmt.Errorf("duplicate unit template %q", t.Name)
	}
	c.units[t.Name] = t
	c.Units = append(c.Units, t)
	return nil
}

func (c *Catalog) AddSpell(t *SpellTemplate) error {
	if c.spells == nil {
		c.spells = make(map[string]*SpellTemplate)
	}
	if _, ok := c.spells[t.Name]; ok {
		return fmt.Errorf("duplicate spell template %q", t.Name)
	}
	c.spells[t.Name] = t
	c.Spells = append(c.Spells, t)
	return nil
}

func (c *Catalog) Unit(name string) (*UnitTemplate, error) {
	if t, ok := c.units[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unit %q: %w", name, ErrUnknownTemplate)
}

func (c *Catalog) Spell(name string) (*SpellTemplate, error) {
	if t, ok := c.spells[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("spell %q: %w", name, ErrUnknownTemplate)
}

func (ru yamlUnit) template() (*UnitTemplate, error) {
	if ru.Name == "" {
		return nil, fmt.Errorf("unit template without a name")
	}
	if ru.Health <= 0 {
		return nil, fmt.Errorf("unit %q: health must be positive", ru.Name)
	}
	t := &UnitTemplate{Name: ru.Name, Cost: ru.Cost, Power: ru.Power, Health: ru.Health}
	for _, ra := range ru.Actions {
		r, err := ParseRange(ra.Range)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", ru.Name, err)
		}
		keywords, err := parseKeywords(ra.Keywords)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", ru.Name, err)
		}
		targets, err := parseTargets(ra.Targets)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", ru.Name, err)
		}
		t.Actions = append(t.Actions, &ActionInfo{Name: ra.Name, Range: r, Keywords: keywords, Targets: targets})
	}
	return t, nil
}

func (rs yamlSpell) template() (*SpellTemplate, error) {
	if rs.Name == "" {
		return nil, fmt.Errorf("spell template without a name")
	}
	if rs.Area.W <= 0 || rs.Area.H <= 0 {
		return nil, fmt.Errorf("spell %q: area must be positive", rs.Name)
	}
	keywords, err := parseKeywords(rs.Keywords)
	if err != nil {
		return nil, fmt.Errorf("spell %q: %w", rs.Name, err)
	}
	targets, err := parseTargets(rs.Targets)
	if err != nil {
		return nil, fmt.Errorf("spell %q: %w", rs.Name, err)
	}
	return &SpellTemplate{Name: rs.Name, Cost: rs.Cost, Power: rs.Power, Area: rs.Area, Keywords: keywords, Targets: targets}, nil
}

func parseKeywords(names []string) ([]Keyword, error) {
	keywords := make([]Keyword, 0, len(names))
	for _, name := range names {
		k, err := ParseKeyword(name)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, nil
}

func parseTargets(names []string) (Targets, error) {
	var t Targets
	for _, name := range names {
		switch name {
		case "enemies":
			t.Enemies = true
		case "allies":
			t.Allies = true
		case "self":
			t.Self = true
		default:
			return t, fmt.Errorf("unknown target %q", name)
		}
	}
	return t, nil
}
