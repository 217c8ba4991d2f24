package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categorization-rules.yaml")
	require.NoError(t, Save(path, DefaultRulesFile()))

	c, err := Load(path)
	require.NoError(t, err)

	def := Default()
	for _, tt := range categorizeCases {
		in := Input{Description: tt.description, Merchant: tt.merchant, Amount: decimal.RequireFromString(tt.amount)}
		want := def.Categorize(in)
		got := c.Categorize(in)
		assert.Equal(t, want.Category, got.Category, "case %s", tt.name)
		assert.True(t, want.Confidence.Equal(got.Confidence), "case %s: %s != %s", tt.name, want.Confidence, got.Confidence)
		assert.Equal(t, want.Subcategory, got.Subcategory, "case %s", tt.name)
		assert.Equal(t, want.Recurring, got.Recurring, "case %s", tt.name)
		assert.Equal(t, want.MerchantType, got.MerchantType, "case %s", tt.name)
	}
}

func TestLoad_EmptyRulesMeansDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Rules(), len(DefaultRules()))
}

func TestLoad_CustomRules(t *testing.T) {
	yml := `rules:
  - category: Pets
    keywords: [chewy, petco]
    confidence: 0.8
    subcategories:
      - name: Online
        keywords: [chewy]
    default_subcategory: Store
    recurrence: keywords
    recurrence_keywords: [autoship]
    merchant_type: pet
fallback:
  category: Uncategorized
  confidence: 0.1
  merchant_type: none
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	got := c.Categorize(Input{Description: "Chewy autoship", Merchant: "Chewy"})
	assert.Equal(t, "Pets", got.Category)
	assert.Equal(t, "Online", got.Subcategory)
	assert.True(t, got.Recurring)
	assert.Equal(t, "pet", got.MerchantType)
	assert.Equal(t, "0.8", got.Confidence.String())

	got = c.Categorize(Input{Description: "Petco"})
	assert.Equal(t, "Store", got.Subcategory)
	assert.False(t, got.Recurring)

	got = c.Categorize(Input{Description: "Starbucks"})
	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "0.1", got.Confidence.String())
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - category: X\n    keywords: [x]\n    confidence: 1.5\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in [0,1]")
}

func TestLoad_InvalidFallback(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "empty category and confidence out of range",
			yaml: "fallback:\n  category: \"\"\n  confidence: 7\n",
			want: []string{"fallback: category is required", "fallback: confidence 7 not in [0,1]"},
		},
		{
			name: "negative confidence",
			yaml: "fallback:\n  category: Misc\n  confidence: -0.1\n",
			want: []string{"fallback: confidence -0.1 not in [0,1]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoad_CustomFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback:\n  category: Misc\n  confidence: 0.3\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	got := c.Categorize(Input{Description: "zzz unmatched"})
	assert.Equal(t, "Misc", got.Category)
	assert.Equal(t, "0.3", got.Confidence.String())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing rules")
}
