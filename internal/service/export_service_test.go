package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/model"
)

func TestExportInventory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exporter := NewExportService(env.items, env.borrows)

	item := env.createItem(t, "Monitor", 2)

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportInventory(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "name", "date", "location", "status", "created_at"}, records[0])
	assert.Equal(t, item.ID.String(), records[1][0])
	assert.Equal(t, "Monitor", records[1][1])
	assert.Equal(t, "Building A", records[1][3])
	assert.Equal(t, model.ItemStatusAvailable, records[1][4])
}

func TestExportLendingInventory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exporter := NewExportService(env.items, env.borrows)
	student := env.createUser(t, "tara", model.RoleStudent)

	item := env.createItem(t, "Keyboard", 5)
	req, err := env.borrowService.CreateBorrowRequest(ctx, item.ID.String(), student.ID.String(), student.StudentID,
		CreateBorrowRequest{Quantity: 2})
	require.NoError(t, err)
	approve(t, env, req.ID.String())

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportLendingInventory(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t,
		[]string{"id", "name", "date", "location", "status", "created_at", "available", "total_borrowed"},
		records[0])
	assert.Equal(t, "3", records[1][6])
	assert.Equal(t, "2", records[1][7])
}
