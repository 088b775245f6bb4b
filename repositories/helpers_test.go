package repositories

import (
	"testing"

	"github.com/Dosada05/sports-portal/models"
	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	captainID := 7
	w := &whereClause{}
	w.search("ali", "name", "email")
	w.eqFold("status", "approved")
	w.eqFold("sport", "   ")
	w.eqInt("captain_id", &captainID)

	assert.Equal(t, " WHERE (name ILIKE $1 OR email ILIKE $1) AND LOWER(status) = LOWER($2) AND captain_id = $3", w.String())
	assert.Equal(t, []interface{}{"%ali%", "approved", 7}, w.args)

	query, args := w.page("SELECT 1", models.ListFilter{Page: 3, Limit: 10})
	assert.Equal(t, "SELECT 1 LIMIT $4 OFFSET $5", query)
	assert.Equal(t, []interface{}{"%ali%", "approved", 7, 10, 20}, args)
	assert.Len(t, w.args, 3, "page must not grow the shared condition args")
}

func TestWhereClauseEmpty(t *testing.T) {
	w := &whereClause{}
	assert.Empty(t, w.String())

	query, args := w.page("SELECT 1", models.ListFilter{Page: 2})
	assert.Equal(t, "SELECT 1", query)
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, escapeLike(`100% _done\`))
}

func TestFormatUniqueID(t *testing.T) {
	assert.Equal(t, "CPT-0001", formatUniqueID("CPT", 1))
	assert.Equal(t, "PLY-0042", formatUniqueID("PLY", 42))
	assert.Equal(t, "PLY-12345", formatUniqueID("PLY", 12345))
}
