package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/applyhub/applyhub/db"
	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"gorm.io/datatypes"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	if err := db.MigrateDatabase(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(gdb)
}

func createCourse(t *testing.T, store *Store, name string) *models.Course {
	t.Helper()
	course := &models.Course{Name: name}
	if err := store.Courses.Create(context.Background(), course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func newApplication(courseID, email string) *models.Application {
	return &models.Application{
		FullName:                 "Aline Uwase",
		Email:                    email,
		DateOfBirth:              datatypes.Date(time.Date(2000, 5, 17, 0, 0, 0, 0, time.UTC)),
		Gender:                   types.GenderFemale,
		Phone:                    "0781234567",
		Nationality:              "Rwandan",
		Province:                 "Kigali",
		District:                 "Gasabo",
		Sector:                   "Kimironko",
		Cell:                     "Bibare",
		Village:                  "Urugwiro",
		EmergencyContactName:     "Jean Uwase",
		EmergencyContactRelation: "Father",
		EmergencyContactPhone:    "0788765432",
		CurrentOccupation:        types.OccupationNone,
		EducationBackground:      types.EducationHighSchool,
		AcademicBackground:       "Mathematics, physics and computer science",
		EnglishProficiency:       types.EnglishIntermediate,
		EnglishSkillConfidence:   types.SkillReading,
		HowDidYouKnow:            types.SourceWebsite,
		Motivation:               "I want to become a software engineer and build tools for my community.",
		CourseID:                 courseID,
		Status:                   types.StatusUnderReview,
	}
}

func TestDuplicateEmailRejectedByStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	course := createCourse(t, store, "Software Engineering")

	if err := store.Applications.Create(ctx, newApplication(course.ID, "aline@example.org")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.Applications.Create(ctx, newApplication(course.ID, "aline@example.org"))
	if !apperr.Is(err, apperr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestConcurrentDuplicateEmailOnlyOneWins(t *testing.T) {
	store := newTestStore(t)
	course := createCourse(t, store, "Software Engineering")

	const attempts = 5
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Applications.Create(context.Background(), newApplication(course.ID, "race@example.org"))
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case apperr.Is(err, apperr.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 created and %d conflicts, got %d and %d", attempts-1, created, conflicts)
	}
}

func TestCreateWithUnknownCourseFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Applications.Create(ctx, newApplication("missing-course", "ghost@example.org"))
	if !apperr.Is(err, apperr.CodeIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
	if _, err := store.Applications.FindByEmail(ctx, "ghost@example.org"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected no record to be created, got %v", err)
	}
}

func TestCourseDeleteBlockedByApplications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	course := createCourse(t, store, "Data Science")
	application := newApplication(course.ID, "keep@example.org")
	if err := store.Applications.Create(ctx, application); err != nil {
		t.Fatalf("create application: %v", err)
	}

	err := store.Courses.Delete(ctx, course.ID)
	if !apperr.Is(err, apperr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := store.Courses.FindByID(ctx, course.ID); err != nil {
		t.Fatalf("course should still exist: %v", err)
	}
	if _, err := store.Applications.FindByID(ctx, application.ID); err != nil {
		t.Fatalf("application should still exist: %v", err)
	}

	empty := createCourse(t, store, "Design")
	if err := store.Courses.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("expected unreferenced course to be deleted: %v", err)
	}
	if err := store.Courses.Delete(ctx, empty.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListOrderingAndFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	se := createCourse(t, store, "Software Engineering")
	ds := createCourse(t, store, "Data Science")

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	first := newApplication(se.ID, "first@example.org")
	first.CreatedAt = base
	second := newApplication(ds.ID, "second@example.org")
	second.FullName = "Eric Mugisha"
	second.CreatedAt = base.Add(time.Hour)
	second.Status = types.StatusAccepted
	for _, a := range []*models.Application{first, second} {
		if err := store.Applications.Create(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := store.Applications.List(ctx, ApplicationFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if all[0].Course == nil || all[0].Course.Name != "Data Science" {
		t.Fatalf("expected course to be joined")
	}

	bySearch, _ := store.Applications.List(ctx, ApplicationFilter{Search: "MUGISHA"})
	if len(bySearch) != 1 || bySearch[0].ID != second.ID {
		t.Fatalf("search filter mismatch: %+v", bySearch)
	}
	byStatus, _ := store.Applications.List(ctx, ApplicationFilter{Status: types.StatusUnderReview})
	if len(byStatus) != 1 || byStatus[0].ID != first.ID {
		t.Fatalf("status filter mismatch: %+v", byStatus)
	}
	byCourse, _ := store.Applications.List(ctx, ApplicationFilter{CourseID: ds.ID})
	if len(byCourse) != 1 || byCourse[0].ID != second.ID {
		t.Fatalf("course filter mismatch: %+v", byCourse)
	}
}

func TestUpdateReviewPartialAndReplace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	course := createCourse(t, store, "Software Engineering")
	application := newApplication(course.ID, "review@example.org")
	if err := store.Applications.Create(ctx, application); err != nil {
		t.Fatalf("create: %v", err)
	}

	status := types.StatusTechnicalInterviewScheduled
	comments := "Strong motivation"
	interview := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	updated, err := store.Applications.UpdateReview(ctx, application.ID, ReviewFields{
		Status:           &status,
		ReviewerComments: &comments,
		InterviewDate:    &interview,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != status || updated.ReviewerComments == nil || *updated.ReviewerComments != comments {
		t.Fatalf("unexpected review fields: %+v", updated)
	}

	marks := 88.5
	replaced, err := store.Applications.UpdateReview(ctx, application.ID, ReviewFields{
		Status:                  &status,
		TechnicalInterviewMarks: &marks,
		ClearUnset:              true,
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.ReviewerComments != nil || replaced.InterviewDate != nil {
		t.Fatalf("expected unset fields to be cleared: %+v", replaced)
	}
	if replaced.TechnicalInterviewMarks == nil || *replaced.TechnicalInterviewMarks != marks {
		t.Fatalf("expected marks to be stored")
	}

	if _, err := store.Applications.UpdateReview(ctx, "missing", ReviewFields{Status: &status}); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteApplicationCascadesNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	course := createCourse(t, store, "Software Engineering")
	application := newApplication(course.ID, "gone@example.org")
	if err := store.Applications.Create(ctx, application); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Notifications.Create(ctx, &models.Notification{
		ApplicationID: application.ID,
		Recipient:     application.Email,
		Subject:       "Interview invitation",
		Status:        models.NotificationSent,
		Attempts:      1,
	}); err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if err := store.Applications.Delete(ctx, application.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notifications, err := store.Notifications.ListByApplication(ctx, application.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Fatalf("expected notifications to be removed with the application")
	}
	if err := store.Applications.Delete(ctx, application.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEmailTemplateLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	course := createCourse(t, store, "Software Engineering")

	email := &models.Email{Subject: "Welcome", Body: "<p>Hello</p>", CourseID: course.ID}
	if err := store.Emails.Create(ctx, email); err != nil {
		t.Fatalf("create: %v", err)
	}
	email.Subject = "Welcome aboard"
	if err := store.Emails.Update(ctx, email); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := store.Emails.FindByID(ctx, email.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Subject != "Welcome aboard" || stored.Course == nil {
		t.Fatalf("unexpected template: %+v", stored)
	}
	if err := store.Emails.Update(ctx, &models.Email{BaseModel: models.BaseModel{ID: "missing"}}); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Emails.Delete(ctx, email.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
