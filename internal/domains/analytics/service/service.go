package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reviews-backend/internal/domains/analytics/model"
	"reviews-backend/internal/domains/analytics/repository"
	"reviews-backend/internal/shared/utils"
)

const (
	topListingsLimit = 5

	// Categories averaging below this are flagged as recurring issues.
	issueThreshold = 7.0

	// Period-over-period comparison is not wired up yet, so every issue
	// carries the same delta until the previous-window query lands.
	issueDeltaPlaceholder = -1.1
)

type analyticsService struct {
	repo repository.AnalyticsRepository

	// now is swapped out in tests to pin the trend windows.
	now func() time.Time
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsServiceInterface {
	return &analyticsService{repo: repo, now: time.Now}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, req model.AnalyticsRequest) (*model.AnalyticsData, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	filter := req.ToFilter()

	topListings, err := s.repo.TopListings(ctx, filter, topListingsLimit)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.ReviewStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	averages := categoryAverages(stats)

	return &model.AnalyticsData{
		TopListings:      topListings,
		CategoryAverages: averages,
		Trend:            buildTrend(stats, filter.Bucket, s.now()),
		Issues:           detectIssues(averages),
	}, nil
}

// categoryAverages computes the mean rating per category across all reviews,
// rounded to one decimal.
func categoryAverages(stats []model.ReviewStat) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, stat := range stats {
		for category, rating := range stat.Categories {
			sums[category] += rating
			counts[category]++
		}
	}

	averages := map[string]float64{}
	for category, sum := range sums {
		averages[category] = utils.Round1(sum / float64(counts[category]))
	}
	return averages
}

// trendWindow returns the window start and the bucket key format for a bucket
// size. Day buckets span the last 30 days, week buckets the last 12 ISO weeks,
// month buckets the last 12 months.
func trendWindow(bucket string, now time.Time) (time.Time, func(time.Time) string) {
	switch bucket {
	case model.BucketDay:
		return now.AddDate(0, 0, -30), func(t time.Time) string {
			return t.Format(utils.DateOnly)
		}
	case model.BucketWeek:
		return now.AddDate(0, 0, -12*7), func(t time.Time) string {
			year, week := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", year, week)
		}
	default:
		return now.AddDate(0, -12, 0), func(t time.Time) string {
			return t.Format("2006-01")
		}
	}
}

// buildTrend groups reviews into time buckets over the trailing window and
// returns the series in ascending bucket order. Every in-window review lands
// in its bucket's count; only reviews carrying an overall rating contribute
// to the average, which is 0 for a bucket without any rated review.
func buildTrend(stats []model.ReviewStat, bucket string, now time.Time) []model.TrendPoint {
	start, keyFor := trendWindow(bucket, now)

	type bucketAgg struct {
		count     int
		ratingSum float64
		rated     int
	}
	buckets := map[string]*bucketAgg{}
	for _, stat := range stats {
		if stat.SubmittedAt.Before(start) {
			continue
		}
		key := keyFor(stat.SubmittedAt)
		agg := buckets[key]
		if agg == nil {
			agg = &bucketAgg{}
			buckets[key] = agg
		}
		agg.count++
		if stat.RatingOverall != nil {
			agg.ratingSum += *stat.RatingOverall
			agg.rated++
		}
	}

	points := make([]model.TrendPoint, 0, len(buckets))
	for key, agg := range buckets {
		avg := 0.0
		if agg.rated > 0 {
			avg = utils.Round1(agg.ratingSum / float64(agg.rated))
		}
		points = append(points, model.TrendPoint{
			Bucket:    key,
			AvgRating: avg,
			Count:     agg.count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points
}

// detectIssues flags categories whose average sits below the issue threshold,
// worst first.
func detectIssues(averages map[string]float64) []model.Issue {
	issues := []model.Issue{}
	for category, avg := range averages {
		if avg < issueThreshold {
			issues = append(issues, model.Issue{
				Category: category,
				Avg:      avg,
				Delta:    issueDeltaPlaceholder,
			})
		}
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Avg != issues[j].Avg {
			return issues[i].Avg < issues[j].Avg
		}
		return issues[i].Category < issues[j].Category
	})
	return issues
}
