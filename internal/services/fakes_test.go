package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/google/uuid"
)

type fakeApplications struct {
	mu    sync.Mutex
	items map[string]*models.Application
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{items: make(map[string]*models.Application)}
}

func (r *fakeApplications) Create(ctx context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email == application.Email {
			return apperr.Conflict("duplicate email")
		}
	}
	application.ID = uuid.NewString()
	application.CreatedAt = time.Now()
	stored := *application
	r.items[application.ID] = &stored
	return nil
}

func (r *fakeApplications) FindByID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound(repository.MsgApplicationNotFound)
	}
	copied := *application
	return &copied, nil
}

func (r *fakeApplications) FindByEmail(ctx context.Context, email string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, application := range r.items {
		if application.Email == email {
			copied := *application
			return &copied, nil
		}
	}
	return nil, apperr.NotFound(repository.MsgApplicationNotFound)
}

func (r *fakeApplications) List(ctx context.Context, filter repository.ApplicationFilter) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applications := []models.Application{}
	for _, application := range r.items {
		if filter.Status != "" && application.Status != filter.Status {
			continue
		}
		if filter.CourseID != "" && application.CourseID != filter.CourseID {
			continue
		}
		applications = append(applications, *application)
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].CreatedAt.After(applications[j].CreatedAt)
	})
	return applications, nil
}

func (r *fakeApplications) UpdateReview(ctx context.Context, id string, fields repository.ReviewFields) (*models.Application, error) {
	r.mu.Lock()
	application, ok := r.items[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperr.NotFound(repository.MsgApplicationNotFound)
	}
	if fields.Status != nil {
		application.Status = *fields.Status
	}
	if fields.ReviewerComments != nil || fields.ClearUnset {
		application.ReviewerComments = fields.ReviewerComments
	}
	if fields.InterviewDate != nil || fields.ClearUnset {
		application.InterviewDate = fields.InterviewDate
	}
	if fields.DecisionDate != nil || fields.ClearUnset {
		application.DecisionDate = fields.DecisionDate
	}
	if fields.TechnicalInterviewMarks != nil || fields.ClearUnset {
		application.TechnicalInterviewMarks = fields.TechnicalInterviewMarks
	}
	r.mu.Unlock()
	return r.FindByID(ctx, id)
}

func (r *fakeApplications) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound(repository.MsgApplicationNotFound)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeApplications) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeCourses struct {
	mu    sync.Mutex
	items map[string]*models.Course
}

func newFakeCourses(courses ...*models.Course) *fakeCourses {
	r := &fakeCourses{items: make(map[string]*models.Course)}
	for _, c := range courses {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCourses) List(ctx context.Context) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courses := []models.Course{}
	for _, c := range r.items {
		courses = append(courses, *c)
	}
	return courses, nil
}

func (r *fakeCourses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound(repository.MsgCourseNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCourses) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	course.ID = uuid.NewString()
	r.items[course.ID] = course
	return nil
}

func (r *fakeCourses) Update(ctx context.Context, id string, patch repository.CoursePatch) (*models.Course, error) {
	r.mu.Lock()
	c, ok := r.items[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperr.NotFound(repository.MsgCourseNotFound)
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	r.mu.Unlock()
	return r.FindByID(ctx, id)
}

func (r *fakeCourses) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound(repository.MsgCourseNotFound)
	}
	delete(r.items, id)
	return nil
}

type fakeEmails struct {
	mu    sync.Mutex
	items map[string]*models.Email
}

func newFakeEmails(emails ...*models.Email) *fakeEmails {
	r := &fakeEmails{items: make(map[string]*models.Email)}
	for _, e := range emails {
		r.items[e.ID] = e
	}
	return r
}

func (r *fakeEmails) List(ctx context.Context) ([]models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emails := []models.Email{}
	for _, e := range r.items {
		emails = append(emails, *e)
	}
	return emails, nil
}

func (r *fakeEmails) FindByID(ctx context.Context, id string) (*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound(repository.MsgEmailNotFound)
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEmails) Create(ctx context.Context, email *models.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email.ID = uuid.NewString()
	stored := *email
	r.items[email.ID] = &stored
	return nil
}

func (r *fakeEmails) Update(ctx context.Context, email *models.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[email.ID]; !ok {
		return apperr.NotFound(repository.MsgEmailNotFound)
	}
	stored := *email
	r.items[email.ID] = &stored
	return nil
}

func (r *fakeEmails) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound(repository.MsgEmailNotFound)
	}
	delete(r.items, id)
	return nil
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *fakeNotifications) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = uuid.NewString()
	r.items = append(r.items, *notification)
	return nil
}

func (r *fakeNotifications) ListByApplication(ctx context.Context, applicationID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Notification{}
	for _, n := range r.items {
		if n.ApplicationID == applicationID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *fakeSender) Send(ctx context.Context, msg Message) (Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return Delivery{From: "noreply@example.org", Attempts: 1}, s.err
}

type fakeRefresher struct {
	mu     sync.Mutex
	events []string
}

func (r *fakeRefresher) Broadcast(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *fakeRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
