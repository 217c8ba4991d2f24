package categorize

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk form of a rule table (rules/categorization-rules.yaml).
type RulesFile struct {
	Rules    []RuleConfig    `yaml:"rules"`
	Fallback *FallbackConfig `yaml:"fallback,omitempty"`
}

// RuleConfig is one rule as written in YAML.
type RuleConfig struct {
	Category           string              `yaml:"category"`
	Keywords           []string            `yaml:"keywords"`
	RequirePositive    bool                `yaml:"require_positive,omitempty"`
	Confidence         float64             `yaml:"confidence"`
	Subcategories      []SubcategoryConfig `yaml:"subcategories,omitempty"`
	DefaultSubcategory string              `yaml:"default_subcategory,omitempty"`
	Recurrence         RecurrenceMode      `yaml:"recurrence,omitempty"`
	RecurrenceKeywords []string            `yaml:"recurrence_keywords,omitempty"`
	MerchantType       string              `yaml:"merchant_type,omitempty"`
}

// SubcategoryConfig is one secondary keyword check as written in YAML.
type SubcategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// FallbackConfig overrides the "Other" result.
type FallbackConfig struct {
	Category     string  `yaml:"category"`
	Confidence   float64 `yaml:"confidence"`
	MerchantType string  `yaml:"merchant_type,omitempty"`
}

// Load reads a rules file. An empty rule list means the built-in rules.
func Load(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return f.Categorizer()
}

// Categorizer converts the file into a validated Categorizer.
func (f RulesFile) Categorizer() (*Categorizer, error) {
	rules := DefaultRules()
	if len(f.Rules) > 0 {
		rules = make([]Rule, 0, len(f.Rules))
		for _, rc := range f.Rules {
			rules = append(rules, rc.rule())
		}
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	fallback := DefaultFallback()
	if f.Fallback != nil {
		fallback = Fallback{
			Category:     f.Fallback.Category,
			Confidence:   decimal.NewFromFloat(f.Fallback.Confidence),
			MerchantType: f.Fallback.MerchantType,
		}
		if err := ValidateFallback(fallback); err != nil {
			return nil, err
		}
	}
	return New(rules, fallback), nil
}

// Save writes a rules file.
func Save(path string, f RulesFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// DefaultRulesFile returns the built-in rules in file form, so a new project
// starts with an editable copy.
func DefaultRulesFile() RulesFile {
	var f RulesFile
	for _, r := range DefaultRules() {
		f.Rules = append(f.Rules, ruleConfig(r))
	}
	fb := DefaultFallback()
	f.Fallback = &FallbackConfig{
		Category:     fb.Category,
		Confidence:   fb.Confidence.InexactFloat64(),
		MerchantType: fb.MerchantType,
	}
	return f
}

func (rc RuleConfig) rule() Rule {
	r := Rule{
		Category:           rc.Category,
		Keywords:           rc.Keywords,
		RequirePositive:    rc.RequirePositive,
		Confidence:         decimal.NewFromFloat(rc.Confidence),
		DefaultSubcategory: rc.DefaultSubcategory,
		Recurrence:         rc.Recurrence,
		RecurrenceKeywords: rc.RecurrenceKeywords,
		MerchantType:       rc.MerchantType,
	}
	for _, s := range rc.Subcategories {
		r.Subcategories = append(r.Subcategories, Subcategory{Name: s.Name, Keywords: s.Keywords})
	}
	return r
}

func ruleConfig(r Rule) RuleConfig {
	rc := RuleConfig{
		Category:           r.Category,
		Keywords:           r.Keywords,
		RequirePositive:    r.RequirePositive,
		Confidence:         r.Confidence.InexactFloat64(),
		DefaultSubcategory: r.DefaultSubcategory,
		Recurrence:         r.Recurrence,
		RecurrenceKeywords: r.RecurrenceKeywords,
		MerchantType:       r.MerchantType,
	}
	for _, s := range r.Subcategories {
		rc.Subcategories = append(rc.Subcategories, SubcategoryConfig{Name: s.Name, Keywords: s.Keywords})
	}
	return rc
}
