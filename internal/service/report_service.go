package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ReportService computes read-only statistics over the request history.
// Months are calendar months in the configured location.
type ReportService struct {
	requests repository.RequestRepository
	statuses *domain.StatusSet
	location *time.Location
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	RequestRepo repository.RequestRepository
	Statuses    *domain.StatusSet
	// Location defaults to UTC.
	Location *time.Location
}

// NewReportService constructs the service. It fails without resolved statuses.
func NewReportService(deps ReportDependencies) (*ReportService, error) {
	if deps.Statuses == nil {
		return nil, apperrors.NewConfigurationError("report service requires resolved statuses", nil)
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{requests: deps.RequestRepo, statuses: deps.Statuses, location: loc}, nil
}

// ParseMonths reads a comma separated list of month numbers. Blank entries
// are skipped; anything else outside 1..12 is rejected.
func ParseMonths(raw string) ([]int, error) {
	seen := map[int]bool{}
	var months []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		month, err := strconv.Atoi(part)
		if err != nil || month < 1 || month > 12 {
			return nil, apperrors.NewValidationError("months must be numbers between 1 and 12", map[string]any{"value": part})
		}
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	if len(months) == 0 {
		return nil, apperrors.NewValidationError("at least one month is required", nil)
	}
	sort.Ints(months)
	return months, nil
}

// AverageResolutionTime is the mean time from acceptance to completion, per
// completion month. Requests that were never accepted are left out.
func (s *ReportService) AverageResolutionTime(ctx context.Context, months []int) ([]domain.MonthlyAverage, error) {
	return s.averageByMonth(ctx, months, func(req domain.Request) *time.Time { return req.AcceptedAt })
}

// AverageHandlingTimeFromSubmission is the mean time from submission to
// completion, per completion month.
func (s *ReportService) AverageHandlingTimeFromSubmission(ctx context.Context, months []int) ([]domain.MonthlyAverage, error) {
	return s.averageByMonth(ctx, months, func(req domain.Request) *time.Time {
		sent := req.SentAt
		return &sent
	})
}

type durationSum struct {
	total time.Duration
	count int
}

func (s *ReportService) averageByMonth(ctx context.Context, months []int, start func(domain.Request) *time.Time) ([]domain.MonthlyAverage, error) {
	if len(months) == 0 {
		return nil, apperrors.NewValidationError("at least one month is required", nil)
	}
	wanted := make(map[int]bool, len(months))
	for _, m := range months {
		if m < 1 || m > 12 {
			return nil, apperrors.NewValidationError("months must be numbers between 1 and 12", map[string]any{"value": m})
		}
		wanted[m] = true
	}

	completed, err := s.requests.ListCompleted(ctx, s.statuses.ID(domain.StageCompleted))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	sums := map[int]*durationSum{}
	for _, req := range completed {
		if req.CompletedAt == nil {
			continue
		}
		month := int(req.CompletedAt.In(s.location).Month())
		if !wanted[month] {
			continue
		}
		from := start(req)
		if from == nil {
			continue
		}
		sum, ok := sums[month]
		if !ok {
			sum = &durationSum{}
			sums[month] = sum
		}
		sum.total += req.CompletedAt.Sub(*from)
		sum.count++
	}

	result := make([]domain.MonthlyAverage, 0, len(sums))
	for month, sum := range sums {
		result = append(result, domain.MonthlyAverage{
			Month:        month,
			AverageHours: sum.total.Hours() / float64(sum.count),
			Requests:     sum.count,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// CountByProblemType counts requests per problem type name, alphabetically.
func (s *ReportService) CountByProblemType(ctx context.Context) ([]domain.ProblemTypeCount, error) {
	counts, err := s.requests.CountByProblemType(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// CountByStatusPerMonth counts requests in each canonical stage, bucketed by
// the year and month they were sent. Every month with a request gets a row,
// even when none of its requests is in a canonical stage.
func (s *ReportService) CountByStatusPerMonth(ctx context.Context) ([]domain.MonthlyStatusCount, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	type bucketKey struct{ year, month int }
	buckets := map[bucketKey]*domain.MonthlyStatusCount{}
	for _, req := range requests {
		sent := req.SentAt.In(s.location)
		key := bucketKey{year: sent.Year(), month: int(sent.Month())}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.MonthlyStatusCount{Year: key.year, Month: key.month}
			buckets[key] = bucket
		}
		switch s.statuses.Stage(req.StatusID) {
		case domain.StageSubmitted:
			bucket.Submitted++
		case domain.StageInProgress:
			bucket.InProgress++
		case domain.StageCompleted:
			bucket.Completed++
		}
	}

	result := make([]domain.MonthlyStatusCount, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}
