package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/applyhub/applyhub/internal/auth"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/services"
	"github.com/applyhub/applyhub/internal/stats"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"
)

func createAdmin(ctx context.Context, gdb *gorm.DB, name, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("-email and -password are required")
	}
	// The CLI never issues sessions.
	issuer, err := auth.NewIssuer("applyctl", time.Hour)
	if err != nil {
		return err
	}
	admins := services.NewAdminService(repository.New(gdb).Admins, issuer, nil)
	admin, err := admins.Create(ctx, name, email, password)
	if err != nil {
		return err
	}
	color.Green("Admin %s created (%s)", admin.Email, admin.ID)
	return nil
}

func printStats(ctx context.Context, gdb *gorm.DB, w io.Writer) error {
	applications, err := repository.New(gdb).Applications.List(ctx, repository.ApplicationFilter{})
	if err != nil {
		return err
	}
	s := stats.Compute(applications)

	fmt.Fprintln(w, color.CyanString("\nTotal applicants: %d", s.TotalApplicants))

	fmt.Fprintln(w, color.YellowString("\nApplicants by status"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Applicants"})
	for _, status := range sortedKeys(s.ApplicantsByStatus) {
		table.Append([]string{status, strconv.Itoa(s.ApplicantsByStatus[status])})
	}
	table.Render()

	fmt.Fprintln(w, color.YellowString("\nApplicants by course"))
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Course", "Applicants"})
	for _, course := range s.Courses {
		table.Append([]string{course.Name, strconv.Itoa(s.ApplicantsByCourse[course.Name])})
	}
	table.Render()

	fmt.Fprintln(w, color.YellowString("\nStatus by course"))
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Course", "Applicants"})
	for _, cell := range s.StatusCourseBreakdown {
		table.Append([]string{string(cell.Status), cell.CourseName, strconv.Itoa(cell.Count)})
	}
	table.Render()
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// clearDatabase removes every applicant-facing row. Admin accounts stay.
func clearDatabase(ctx context.Context, gdb *gorm.DB) error {
	var counts [4]int64
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, model := range []interface{}{&models.Notification{}, &models.Application{}, &models.Email{}, &models.Course{}} {
			result := tx.Where("1 = 1").Delete(model)
			if result.Error != nil {
				return result.Error
			}
			counts[i] = result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return err
	}
	color.Green("Deleted %d notifications, %d applications, %d emails, %d courses",
		counts[0], counts[1], counts[2], counts[3])
	return nil
}
