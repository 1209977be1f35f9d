package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/config"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/policy"
)

// setupTestDB opens a unique in-memory database per test to avoid
// cross-test collisions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test " + string(role),
		Email:    uuid.NewString() + "@test.local",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createDepartment(t *testing.T, db *gorm.DB) models.Department {
	t.Helper()
	department := models.Department{
		NameAr: "قسم " + uuid.NewString(),
		NameFr: "Département " + uuid.NewString(),
	}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}
	return department
}

func createCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{
		NameAr: "صنف " + uuid.NewString(),
		NameFr: "Catégorie " + uuid.NewString(),
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func createLocation(t *testing.T, db *gorm.DB, departmentID uuid.UUID) models.Location {
	t.Helper()
	location := models.Location{
		NameAr:       "موقع " + uuid.NewString(),
		NameFr:       "Salle " + uuid.NewString(),
		DepartmentID: departmentID,
	}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return location
}

func actorFor(user models.User) policy.Actor {
	return policy.Actor{ID: user.ID, Role: user.Role, IsAnonymous: user.IsAnonymous}
}
