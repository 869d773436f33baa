package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/model"
)

func TestRecentActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	feed := NewActivityService(env.borrows, env.activity)

	admin := env.createUser(t, "ursula", model.RoleAdmin)
	student := env.createUser(t, "viktor", model.RoleStudent)

	// Item registered by an admin shows up as add_inventory.
	item, err := env.itemService.CreateItem(ctx, admin.ID.String(), CreateItemRequest{
		Name: "Drill", Quantity: 3, Location: "Workshop",
	})
	require.NoError(t, err)

	// Approved borrow shows up as borrow; pending ones do not.
	req, err := env.borrowService.CreateBorrowRequest(ctx, item.ID.String(), student.ID.String(), student.StudentID,
		CreateBorrowRequest{Quantity: 1})
	require.NoError(t, err)
	approve(t, env, req.ID.String())

	// Lost-item report shows up as report_lost.
	env.reportItem(t, admin.ID.String(), "Gloves")

	entries, err := feed.RecentActivity(ctx)
	require.NoError(t, err)

	actions := map[string]int{}
	for _, e := range entries {
		actions[e.Action]++
	}
	assert.Equal(t, 1, actions["borrow"])
	assert.Equal(t, 1, actions["add_inventory"])
	assert.Equal(t, 1, actions["report_lost"])

	for _, e := range entries {
		switch e.Action {
		case "borrow":
			assert.Equal(t, student.Username, e.Username)
			assert.Equal(t, item.Name, e.ItemName)
			assert.Equal(t, model.BorrowStatusApproved, e.Status)
		case "add_inventory":
			assert.Equal(t, admin.Username, e.Username)
			assert.Equal(t, model.RoleAdmin, e.Role)
			assert.Equal(t, 3, e.Quantity)
		case "report_lost":
			assert.Equal(t, "Gloves", e.ItemName)
			assert.Equal(t, 1, e.Quantity)
		}
	}

	// Newest first.
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].Date.Before(entries[i].Date))
	}
}
