// Package stats aggregates application counts for the admin dashboard.
package stats

import (
	"sort"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
)

// KeySeparator joins status and course name in ApplicantsByStatusAndCourse.
const KeySeparator = "__"

type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatusCourseCount is one cell of the status by course matrix.
type StatusCourseCount struct {
	Status     types.Status `json:"status"`
	CourseID   string       `json:"courseId"`
	CourseName string       `json:"courseName"`
	Count      int          `json:"count"`
}

type Statistics struct {
	TotalApplicants             int                 `json:"totalApplicants"`
	ApplicantsByStatus          map[string]int      `json:"applicantsByStatus"`
	ApplicantsByCourse          map[string]int      `json:"applicantsByCourse"`
	ApplicantsByStatusAndCourse map[string]int      `json:"applicantsByStatusAndCourse"`
	StatusCourseBreakdown       []StatusCourseCount `json:"statusCourseBreakdown"`
	Courses                     []CourseRef         `json:"courses"`
}

type cellKey struct {
	status   types.Status
	courseID string
}

// Compute summarises applications. Courses appear in the order they are
// first seen; applications without a joined course count under their
// course id.
func Compute(applications []models.Application) Statistics {
	s := Statistics{
		TotalApplicants:             len(applications),
		ApplicantsByStatus:          map[string]int{},
		ApplicantsByCourse:          map[string]int{},
		ApplicantsByStatusAndCourse: map[string]int{},
		StatusCourseBreakdown:       []StatusCourseCount{},
		Courses:                     []CourseRef{},
	}

	seen := map[string]bool{}
	cells := map[cellKey]*StatusCourseCount{}
	order := []cellKey{}

	for _, a := range applications {
		name := courseName(a)

		s.ApplicantsByStatus[string(a.Status)]++
		s.ApplicantsByCourse[name]++
		s.ApplicantsByStatusAndCourse[StatusCourseKey(a.Status, name)]++

		if !seen[a.CourseID] {
			seen[a.CourseID] = true
			s.Courses = append(s.Courses, CourseRef{ID: a.CourseID, Name: name})
		}

		key := cellKey{status: a.Status, courseID: a.CourseID}
		cell, ok := cells[key]
		if !ok {
			cell = &StatusCourseCount{Status: a.Status, CourseID: a.CourseID, CourseName: name}
			cells[key] = cell
			order = append(order, key)
		}
		cell.Count++
	}

	for _, key := range order {
		s.StatusCourseBreakdown = append(s.StatusCourseBreakdown, *cells[key])
	}
	sort.SliceStable(s.StatusCourseBreakdown, func(i, j int) bool {
		return statusRank(s.StatusCourseBreakdown[i].Status) < statusRank(s.StatusCourseBreakdown[j].Status)
	})

	return s
}

// StatusCourseKey formats the legacy composite key.
func StatusCourseKey(status types.Status, courseName string) string {
	return string(status) + KeySeparator + courseName
}

func courseName(a models.Application) string {
	if a.Course != nil {
		return a.Course.Name
	}
	return a.CourseID
}

func statusRank(s types.Status) int {
	for i, known := range types.Statuses {
		if s == known {
			return i
		}
	}
	return len(types.Statuses)
}
