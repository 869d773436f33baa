package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"backend/internal/repository"
)

// ExportService streams inventory snapshots as CSV for admin download.
type ExportService interface {
	ExportInventory(ctx context.Context, w io.Writer) error
	ExportLendingInventory(ctx context.Context, w io.Writer) error
}

type exportService struct {
	items   repository.ItemRepository
	borrows repository.BorrowRepository
}

func NewExportService(items repository.ItemRepository, borrows repository.BorrowRepository) ExportService {
	return &exportService{items: items, borrows: borrows}
}

const dateLayout = "2006-01-02"

func (s *exportService) ExportInventory(ctx context.Context, w io.Writer) error {
	items, err := s.items.List(ctx, "dateAdded")
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "date", "location", "status", "created_at"}); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			item.ID.String(),
			item.Name,
			item.Date.Format(dateLayout),
			item.Location,
			item.Status,
			item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportLendingInventory(ctx context.Context, w io.Writer) error {
	items, err := s.items.List(ctx, "dateAdded")
	if err != nil {
		return err
	}
	borrowed, err := s.items.BorrowedTotals(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "date", "location", "status", "created_at", "available", "total_borrowed"}); err != nil {
		return err
	}
	for _, item := range items {
		total := borrowed[item.ID]
		record := []string{
			item.ID.String(),
			item.Name,
			item.Date.Format(dateLayout),
			item.Location,
			item.Status,
			item.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(item.Quantity - total),
			strconv.Itoa(total),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
