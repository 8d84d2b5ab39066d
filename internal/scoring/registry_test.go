package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInvariants(t *testing.T) {
	require.NoError(t, ValidateRegistry())
	assert.Equal(t, 100, TotalWeight())
}

func TestCategoryByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantFound  bool
		wantWeight int
	}{
		{name: "performance carries the largest weight", id: "performance", wantFound: true, wantWeight: 30},
		{name: "cash flow", id: "cash_flow", wantFound: true, wantWeight: 25},
		{name: "regulatory", id: "regulatory", wantFound: true, wantWeight: 5},
		{name: "unknown id is not found, not a fault", id: "liquidity", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := CategoryByID(tt.id)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.id, cat.ID)
				assert.Equal(t, tt.wantWeight, cat.Weight)
				assert.NotEmpty(t, cat.Guidelines)
			} else {
				assert.Empty(t, cat.ID)
			}
		})
	}
}

func TestRedFlagLookups(t *testing.T) {
	flag, ok := RedFlagByID("missing_audited_financials")
	require.True(t, ok)
	assert.Equal(t, SeverityHigh, flag.Severity)
	assert.Equal(t, "documentation", flag.Category)

	_, ok = RedFlagByID("does_not_exist")
	assert.False(t, ok)

	docFlags := RedFlagsByCategory("documentation")
	assert.Len(t, docFlags, 3)
	for _, f := range docFlags {
		assert.Equal(t, "documentation", f.Category)
	}

	highFlags := RedFlagsBySeverity(SeverityHigh)
	assert.Len(t, highFlags, 3)
	for _, f := range highFlags {
		assert.Equal(t, SeverityHigh, f.Severity)
	}
}

func TestEveryRedFlagReferencesRegisteredCategory(t *testing.T) {
	for _, f := range RedFlags() {
		_, ok := CategoryByID(f.Category)
		assert.True(t, ok, "red flag %s references unknown category %s", f.ID, f.Category)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	cats[0].Weight = 999

	fresh, _ := CategoryByID(cats[0].ID)
	assert.NotEqual(t, 999, fresh.Weight)
	assert.Equal(t, 100, TotalWeight())
}
