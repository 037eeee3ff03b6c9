package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

const dashboardCacheKey = "dashboard:summary"

// ProgramCount is one slice of the per-program participant breakdown.
type ProgramCount struct {
	Program string `json:"program"`
	Count   int    `json:"count"`
}

// ParishGroup lists participants of one parish.
type ParishGroup struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// DeaneryGroup groups parishes under a deanery, both levels sorted by name.
type DeaneryGroup struct {
	Name     string        `json:"name"`
	Parishes []ParishGroup `json:"parishes"`
}

// DashboardSummary is the aggregate view backing the admin dashboard.
type DashboardSummary struct {
	Participants    int            `json:"participants"`
	Courses         int            `json:"courses"`
	Programs        int            `json:"programs"`
	Enrollments     int            `json:"enrollments"`
	AverageGPA      float64        `json:"average_gpa"`
	ProgramCounts   []ProgramCount `json:"program_counts"`
	DeaneryGrouping []DeaneryGroup `json:"deanery_grouping"`
}

type storeSizer interface {
	Len() int
}

// DashboardService aggregates store state for the dashboard, caching the
// result since the scans walk every participant.
type DashboardService struct {
	participants participantLister
	courses      storeSizer
	programs     storeSizer
	cache        *CacheService
	logger       *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(participants participantLister, courses, programs storeSizer, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{participants: participants, courses: courses, programs: programs, cache: cache, logger: logger}
}

// Summary computes (or serves from cache) the dashboard aggregate.
func (s *DashboardService) Summary(ctx context.Context) DashboardSummary {
	var cached DashboardSummary
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return cached
	}

	all := s.participants.All()
	summary := DashboardSummary{
		Participants: len(all),
		Courses:      s.courses.Len(),
		Programs:     s.programs.Len(),
	}

	programCounts := map[string]int{}
	grouping := map[string]map[string][]string{}
	var gpaSum float64
	var gpaCount int

	for _, p := range all {
		summary.Enrollments += len(p.Enrollments)
		programCounts[p.Program]++

		if gpa := ComputeGPA(p.Enrollments); gpa > 0 {
			gpaSum += gpa
			gpaCount++
		}

		deanery := p.Deanery
		if deanery == "" {
			deanery = "Unassigned Deanery"
		}
		parish := p.Parish
		if parish == "" {
			parish = "Unassigned Parish"
		}
		if grouping[deanery] == nil {
			grouping[deanery] = map[string][]string{}
		}
		grouping[deanery][parish] = append(grouping[deanery][parish], p.Name)
	}

	if gpaCount > 0 {
		summary.AverageGPA = gpaSum / float64(gpaCount)
	}

	for program, count := range programCounts {
		summary.ProgramCounts = append(summary.ProgramCounts, ProgramCount{Program: program, Count: count})
	}
	sort.Slice(summary.ProgramCounts, func(i, j int) bool {
		return summary.ProgramCounts[i].Program < summary.ProgramCounts[j].Program
	})

	for deanery, parishes := range grouping {
		group := DeaneryGroup{Name: deanery}
		for parish, names := range parishes {
			sort.Strings(names)
			group.Parishes = append(group.Parishes, ParishGroup{Name: parish, Participants: names})
		}
		sort.Slice(group.Parishes, func(i, j int) bool { return group.Parishes[i].Name < group.Parishes[j].Name })
		summary.DeaneryGrouping = append(summary.DeaneryGrouping, group)
	}
	sort.Slice(summary.DeaneryGrouping, func(i, j int) bool {
		return summary.DeaneryGrouping[i].Name < summary.DeaneryGrouping[j].Name
	})

	s.cache.Set(ctx, dashboardCacheKey, summary, 0)
	return summary
}

// Invalidate drops the cached summary; mutation handlers call this.
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardCacheKey)
}
