package postgres

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moneyColumn = regexp.MustCompile(`(?i)\b(price|cost)\s+(?:TYPE\s+)?NUMERIC(\(\s*\d+\s*,\s*\d+\s*\))?`)

// Money must round-trip unchanged: the order cost returned to the caller
// is the one read back later.
func TestMigrations_MoneyColumnsKeepScale(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)

	final := map[string]string{}
	for _, entry := range entries {
		body, err := fs.ReadFile(migrations, "migrations/"+entry.Name())
		require.NoError(t, err)

		up, _, _ := strings.Cut(string(body), "-- +goose Down")
		for _, m := range moneyColumn.FindAllStringSubmatch(up, -1) {
			final[strings.ToLower(m[1])] = m[2]
		}
	}

	require.Contains(t, final, "price")
	require.Contains(t, final, "cost")
	assert.Empty(t, final["price"], "coffee_types.price is rounded to a fixed scale")
	assert.Empty(t, final["cost"], "coffee_orders.cost is rounded to a fixed scale")
}
