package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffNoChanges(t *testing.T) {
	changes := Diff([]Field{{Name: "FirstName", Old: "Jane", New: "Jane"}})
	assert.Empty(t, changes)
}

func TestDiffEmptyOldRendersNone(t *testing.T) {
	changes := Diff([]Field{{Name: "Phone", Old: "", New: "555-1234"}})
	assert.Equal(t, []string{"Phone: 'None' → '555-1234'"}, changes)
}

func TestDiffEmptyNewRendersNone(t *testing.T) {
	changes := Diff([]Field{{Name: "Phone", Old: "555-1234", New: ""}})
	assert.Equal(t, []string{"Phone: '555-1234' → 'None'"}, changes)
}

func TestDiffCaseSensitiveComparison(t *testing.T) {
	changes := Diff([]Field{{Name: "Status", Old: "active", New: "Active"}})
	assert.Equal(t, []string{"Status: 'active' → 'Active'"}, changes)
}

func TestDiffPreservesDeclarationOrder(t *testing.T) {
	changes := Diff([]Field{
		{Name: "Zebra", Old: "a", New: "b"},
		{Name: "Apple", Old: "c", New: "c"},
		{Name: "Mango", Old: "d", New: "e"},
	})
	assert.Equal(t, []string{
		"Zebra: 'a' → 'b'",
		"Mango: 'd' → 'e'",
	}, changes)
}
