package services

import (
	"testing"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
)

func TestReportCreateAndGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	student := createUser(t, db, models.RoleStudent)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, err := svc.Create(actorFor(student), CreateReportInput{
		Title:       "Broken chair",
		Description: "Chair in the front row is broken",
		CategoryID:  category.ID,
		LocationID:  location.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if report.Status != models.ReportPending {
		t.Fatalf("expected pending status, got %s", report.Status)
	}
	if report.UserID == nil || *report.UserID != student.ID {
		t.Fatal("expected report to belong to the creator")
	}
	if report.Category.ID != category.ID || report.Location.ID != location.ID {
		t.Fatal("expected relations to be loaded")
	}

	got, err := svc.Get(actorFor(student), report.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != report.ID || got.Status != models.ReportPending {
		t.Fatal("round trip mismatch")
	}
}

func TestReportCreateUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	student := createUser(t, db, models.RoleStudent)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	_, err := svc.Create(actorFor(student), CreateReportInput{
		Title: "x", Description: "y",
		CategoryID: department.ID, // not a category
		LocationID: location.ID,
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(actorFor(student), CreateReportInput{
		Title: "x", Description: "y",
		CategoryID: category.ID,
		LocationID: category.ID, // not a location
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReportListScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	studentA := createUser(t, db, models.RoleStudent)
	studentB := createUser(t, db, models.RoleStudent)
	head := createUser(t, db, models.RoleDepartmentHead)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	for _, u := range []models.User{studentA, studentA, studentB} {
		if _, err := svc.Create(actorFor(u), CreateReportInput{
			Title: "t", Description: "d",
			CategoryID: category.ID, LocationID: location.ID,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	own, err := svc.List(actorFor(studentA))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("student should see only own reports, got %d", len(own))
	}

	all, err := svc.List(actorFor(head))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("department head should see all reports, got %d", len(all))
	}
}

func TestReportGetAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	studentA := createUser(t, db, models.RoleStudent)
	studentB := createUser(t, db, models.RoleStudent)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, err := svc.Create(actorFor(studentA), CreateReportInput{
		Title: "t", Description: "d",
		CategoryID: category.ID, LocationID: location.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(actorFor(studentB), report.ID); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Absence wins over authorization.
	missing := createDepartment(t, db).ID
	if _, err := svc.Get(actorFor(studentB), missing); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReportUpdateFieldMaskByRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	student := createUser(t, db, models.RoleStudent)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, err := svc.Create(actorFor(student), CreateReportInput{
		Title: "t", Description: "d",
		CategoryID: category.ID, LocationID: location.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Status writes by the owner are rejected, not silently dropped.
	status := models.ReportResolved
	_, err = svc.Update(actorFor(student), report.ID, UpdateReportInput{Status: &status})
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	got, _ := svc.Get(actorFor(student), report.ID)
	if got.Status != models.ReportPending {
		t.Fatal("status must be unchanged after rejected update")
	}

	// Title/description on an owned report are fine.
	title := "new title"
	updated, err := svc.Update(actorFor(student), report.ID, UpdateReportInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "new title" {
		t.Fatalf("expected title update, got %q", updated.Title)
	}

	// Privileged update may assign a department.
	admin := createUser(t, db, models.RoleAdmin)
	depID := department.ID
	updated, err = svc.Update(actorFor(admin), report.ID, UpdateReportInput{DepartmentID: &depID})
	if err != nil {
		t.Fatalf("privileged update: %v", err)
	}
	if updated.DepartmentID == nil || *updated.DepartmentID != department.ID {
		t.Fatal("expected department assignment")
	}
}

func TestReportUpdateStatusLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	studentA := createUser(t, db, models.RoleStudent)
	studentB := createUser(t, db, models.RoleStudent)
	admin := createUser(t, db, models.RoleAdmin)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, err := svc.Create(actorFor(studentA), CreateReportInput{
		Title: "t", Description: "d",
		CategoryID: category.ID, LocationID: location.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Another student may not touch status, owner or not.
	_, err = svc.UpdateStatus(actorFor(studentB), report.ID, models.ReportResolved, "")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	updated, err := svc.UpdateStatus(actorFor(admin), report.ID, models.ReportResolved, "fixed")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != models.ReportResolved {
		t.Fatalf("expected resolved, got %s", updated.Status)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != admin.ID {
		t.Fatal("expected updated_by to record the admin")
	}

	// resolved is terminal.
	_, err = svc.UpdateStatus(actorFor(admin), report.ID, models.ReportInProgress, "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict on terminal transition, got %v", err)
	}

	// The owner got a notification for the status change.
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", studentA.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 notification for owner, got %d", count)
	}

	// Invalid status value is a validation error.
	_, err = svc.UpdateStatus(actorFor(admin), report.ID, models.ReportStatus("suspicious"), "")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReportReopenRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	student := createUser(t, db, models.RoleStudent)
	admin := createUser(t, db, models.RoleAdmin)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, _ := svc.Create(actorFor(student), CreateReportInput{
		Title: "t", Description: "d",
		CategoryID: category.ID, LocationID: location.ID,
	})

	if _, err := svc.UpdateStatus(actorFor(admin), report.ID, models.ReportRejected, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}
	updated, err := svc.UpdateStatus(actorFor(admin), report.ID, models.ReportPending, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if updated.Status != models.ReportPending {
		t.Fatalf("expected pending after reopen, got %s", updated.Status)
	}
}

func TestReportDeleteRules(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	student := createUser(t, db, models.RoleStudent)
	head := createUser(t, db, models.RoleDepartmentHead)
	admin := createUser(t, db, models.RoleAdmin)
	department := createDepartment(t, db)
	category := createCategory(t, db)
	location := createLocation(t, db, department.ID)

	report, _ := svc.Create(actorFor(student), CreateReportInput{
		Title: "t", Description: "d",
		CategoryID: category.ID, LocationID: location.ID,
	})

	// Department head may view but not delete someone else's report.
	if err := svc.Delete(actorFor(head), report.ID); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := svc.Delete(actorFor(admin), report.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(actorFor(admin), report.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
