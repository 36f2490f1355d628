// Package analytics computes the monitoring dashboards from raw rows. Every
// function is pure and returns 0 rather than NaN on empty input or a zero
// denominator.
package analytics

import (
	"math"

	"github.com/yigit/lrms/internal/app/models"
)

// ReportStat is the slice of a report the aggregations need.
type ReportStat struct {
	LecturerID      int64
	LecturerRole    models.Role
	StudentsPresent int
	TotalStudents   int
	HasFeedback     bool
}

// ModuleRef identifies a module by id and name.
type ModuleRef struct {
	ID   int64
	Name string
}

// RatingStat is the slice of a rating the aggregations need.
type RatingStat struct {
	Rating int
	Type   models.RatingType
}

func ratio(r ReportStat) (float64, bool) {
	if r.TotalStudents <= 0 {
		return 0, false
	}
	return float64(r.StudentsPresent) / float64(r.TotalStudents), true
}

// AvgAttendance is the mean of present/total over reports with total > 0.
func AvgAttendance(reports []ReportStat) float64 {
	var sum float64
	n := 0
	for _, r := range reports {
		if v, ok := ratio(r); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CurriculumCoverage is distinct module names over distinct module ids.
func CurriculumCoverage(modules []ModuleRef) float64 {
	ids := make(map[int64]struct{}, len(modules))
	names := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		ids[m.ID] = struct{}{}
		names[m.Name] = struct{}{}
	}
	if len(ids) == 0 {
		return 0
	}
	return float64(len(names)) / float64(len(ids))
}

// StudentSatisfaction is mean(rating/5) over student_engagement ratings.
func StudentSatisfaction(ratings []RatingStat) float64 {
	var sum float64
	n := 0
	for _, r := range ratings {
		if r.Type != models.RatingStudentEngagement {
			continue
		}
		sum += float64(r.Rating) / float64(models.MaxRating)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// StudentEngagement is the lecturer-facing name for StudentSatisfaction over
// the ratings of that lecturer's reports.
func StudentEngagement(ratings []RatingStat) float64 {
	return StudentSatisfaction(ratings)
}

// ReportCompletionRate divides reviewed reports by reviewed reports, so it is
// 1 when any report carries PRL feedback and 0 otherwise. This is the
// long-standing dashboard figure; FeedbackRatio gives the proportion.
func ReportCompletionRate(reports []ReportStat) float64 {
	withFeedback := 0
	for _, r := range reports {
		if r.HasFeedback {
			withFeedback++
		}
	}
	if withFeedback == 0 {
		return 0
	}
	return float64(withFeedback) / float64(withFeedback)
}

// FeedbackRatio is reviewed reports over all reports.
func FeedbackRatio(reports []ReportStat) float64 {
	if len(reports) == 0 {
		return 0
	}
	withFeedback := 0
	for _, r := range reports {
		if r.HasFeedback {
			withFeedback++
		}
	}
	return float64(withFeedback) / float64(len(reports))
}

// LecturerPerformance maps lecturer id to mean attendance percentage over
// that lecturer's reports with total > 0. Reports authored by other roles are
// ignored.
func LecturerPerformance(reports []ReportStat) map[int64]float64 {
	sums := map[int64]float64{}
	counts := map[int64]int{}
	for _, r := range reports {
		if r.LecturerRole != models.RoleLecturer {
			continue
		}
		v, ok := ratio(r)
		if !ok {
			continue
		}
		sums[r.LecturerID] += v
		counts[r.LecturerID]++
	}

	out := make(map[int64]float64, len(sums))
	for id, sum := range sums {
		out[id] = sum / float64(counts[id]) * 100
	}
	return out
}

// OverallPerformance is the mean of the four headline ratios as a
// percentage, rounded to one decimal place.
func OverallPerformance(avgAttendance, coverage, satisfaction, completion float64) float64 {
	mean := (avgAttendance + coverage + satisfaction + completion) / 4
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0
	}
	return math.Round(mean*1000) / 10
}

// Program bundles the PL dashboard.
type Program struct {
	AvgAttendance        float64
	CurriculumCoverage   float64
	StudentSatisfaction  float64
	ReportCompletionRate float64
	FeedbackRatio        float64
	LecturerPerformance  map[int64]float64
	OverallPerformance   float64
}

// ComputeProgram runs every programme aggregation over the given rows.
func ComputeProgram(reports []ReportStat, modules []ModuleRef, ratings []RatingStat) Program {
	p := Program{
		AvgAttendance:        AvgAttendance(reports),
		CurriculumCoverage:   CurriculumCoverage(modules),
		StudentSatisfaction:  StudentSatisfaction(ratings),
		ReportCompletionRate: ReportCompletionRate(reports),
		FeedbackRatio:        FeedbackRatio(reports),
		LecturerPerformance:  LecturerPerformance(reports),
	}
	p.OverallPerformance = OverallPerformance(p.AvgAttendance, p.CurriculumCoverage,
		p.StudentSatisfaction, p.ReportCompletionRate)
	return p
}
