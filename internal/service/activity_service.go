package service

import (
	"context"
	"sort"
	"time"

	"backend/internal/repository"
)

const (
	activityPerSource = 20
	activityCap       = 40
	inventoryWindow   = 30 * 24 * time.Hour
)

// ActivityEntry is one row in the merged activity feed.
type ActivityEntry struct {
	ID         string     `json:"id"`
	Action     string     `json:"action"` // borrow, add_inventory, report_lost
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	ItemName   string     `json:"item_name"`
	Quantity   int        `json:"quantity"`
	Date       time.Time  `json:"date"`
	Status     string     `json:"status,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// ActivityService builds the read-only activity feed from recent borrow
// transitions, inventory additions and lost-item reports.
type ActivityService interface {
	RecentActivity(ctx context.Context) ([]ActivityEntry, error)
}

type activityService struct {
	borrows  repository.BorrowRepository
	activity repository.ActivityRepository
}

func NewActivityService(borrows repository.BorrowRepository, activity repository.ActivityRepository) ActivityService {
	return &activityService{borrows: borrows, activity: activity}
}

func (s *activityService) RecentActivity(ctx context.Context) ([]ActivityEntry, error) {
	borrowLogs, err := s.borrows.ListRecentTransitions(ctx, activityPerSource)
	if err != nil {
		return nil, err
	}
	inventoryLogs, err := s.activity.ListItemCreations(ctx, time.Now().Add(-inventoryWindow), activityPerSource)
	if err != nil {
		return nil, err
	}
	reportLogs, err := s.activity.ListReports(ctx, activityPerSource)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(borrowLogs)+len(inventoryLogs)+len(reportLogs))
	for _, b := range borrowLogs {
		entries = append(entries, ActivityEntry{
			ID:         b.ID.String(),
			Action:     "borrow",
			Username:   b.Username,
			Role:       "student",
			ItemName:   b.ItemName,
			Quantity:   b.Quantity,
			Date:       b.RequestDate,
			Status:     b.Status,
			ReturnDate: b.ReturnDate,
		})
	}
	for _, i := range inventoryLogs {
		entries = append(entries, ActivityEntry{
			ID:       i.ID.String(),
			Action:   "add_inventory",
			Username: i.Username,
			Role:     i.Role,
			ItemName: i.Name,
			Quantity: i.Quantity,
			Date:     i.CreatedAt,
		})
	}
	for _, r := range reportLogs {
		entries = append(entries, ActivityEntry{
			ID:       r.ID.String(),
			Action:   "report_lost",
			Username: r.Username,
			Role:     r.Role,
			ItemName: r.Name,
			Quantity: 1,
			Date:     r.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > activityCap {
		entries = entries[:activityCap]
	}
	return entries, nil
}
