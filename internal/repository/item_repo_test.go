package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemOrder(t *testing.T) {
	assert.Equal(t, "created_at DESC", ItemOrder("dateAdded"))
	assert.Equal(t, "name ASC", ItemOrder("name"))
	assert.Equal(t, "status ASC", ItemOrder("status"))

	// Anything outside the whitelist falls back to newest-first. Raw SQL in
	// the sort key must never reach ORDER BY.
	assert.Equal(t, "created_at DESC", ItemOrder("name; DROP TABLE items"))
	assert.Equal(t, "created_at DESC", ItemOrder(""))
}
