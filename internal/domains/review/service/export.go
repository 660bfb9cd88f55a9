package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"reviews-backend/internal/domains/review/model"
)

// ExportReviews renders the filtered review set into an Excel workbook.
// The same validated filters as ListReviews apply, without pagination and
// capped at MaxExportRows rows.
func (s *reviewService) ExportReviews(ctx context.Context, req model.ListReviewsRequest) (*excelize.File, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := req.ToFilter()
	filter.Page = 1
	filter.PageSize = model.MaxExportRows

	reviews, _, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for export: %w", err)
	}

	return buildReviewsWorkbook(reviews)
}

func buildReviewsWorkbook(reviews []*model.ReviewWithListing) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Reviews"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Listing", "Guest", "Type", "Status", "Rating",
		"Categories", "Channel", "Submitted At", "Approved", "Review",
	}
	for colIdx, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for i, r := range reviews {
		rowNum := i + 2
		values := []interface{}{
			r.ListingName,
			deref(r.AuthorName),
			r.Type,
			r.Status,
			ratingCell(r.RatingOverall),
			formatCategories(r.Categories),
			deref(r.Channel),
			r.SubmittedAt.UTC().Format(time.RFC3339),
			r.Approved,
			deref(r.Text),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ratingCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// formatCategories renders the category map as "name=rating" pairs in a
// stable order.
func formatCategories(categories map[string]float64) string {
	if len(categories) == 0 {
		return ""
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%g", name, categories[name]))
	}
	return strings.Join(pairs, ", ")
}
