// Seed tool: creates the reference data (bilingual departments, categories
// and a few locations) plus the initial admin account. Safe to re-run; rows
// that already exist are skipped.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/config"
	"github.com/unihub-dz/campus-report-backend/models"
)

var departments = []models.Department{
	{NameAr: "قسم علوم الحاسوب", NameFr: "Département d'Informatique"},
	{NameAr: "قسم الهندسة المدنية", NameFr: "Département de Génie Civil"},
	{NameAr: "قسم الهندسة الكهربائية", NameFr: "Département de Génie Électrique"},
	{NameAr: "قسم الهندسة الميكانيكية", NameFr: "Département de Génie Mécanique"},
	{NameAr: "قسم العلوم الإدارية", NameFr: "Département des Sciences de Gestion"},
}

var categories = []models.Category{
	{NameAr: "مشكلة تقنية", NameFr: "Problème Technique"},
	{NameAr: "مشكلة بنية تحتية", NameFr: "Problème d'Infrastructure"},
	{NameAr: "مشكلة أمنية", NameFr: "Problème de Sécurité"},
	{NameAr: "مشكلة نظافة", NameFr: "Problème de Propreté"},
	{NameAr: "مشكلة أثاث", NameFr: "Problème de Mobilier"},
	{NameAr: "مشكلة إضاءة", NameFr: "Problème d'Éclairage"},
}

var locations = []struct {
	NameAr       string
	NameFr       string
	DepartmentFr string
}{
	{"قاعة المحاضرات الكبرى", "Grand Amphithéâtre", "Département d'Informatique"},
	{"مخبر الإعلام الآلي", "Laboratoire d'Informatique", "Département d'Informatique"},
	{"قاعة الرسم الصناعي", "Salle de Dessin Industriel", "Département de Génie Civil"},
	{"مخبر الإلكترونيك", "Laboratoire d'Électronique", "Département de Génie Électrique"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("init logger: ", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := config.InitDB(cfg); err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	db := config.DB

	for _, d := range departments {
		seedDepartment(db, logger, d)
	}
	for _, c := range categories {
		seedCategory(db, logger, c)
	}
	for _, l := range locations {
		seedLocation(db, logger, l.NameAr, l.NameFr, l.DepartmentFr)
	}
	seedAdmin(db, logger)

	logger.Info("seed complete")
}

func seedDepartment(db *gorm.DB, logger *zap.Logger, d models.Department) {
	var count int64
	db.Model(&models.Department{}).Where("name_fr = ?", d.NameFr).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&d).Error; err != nil {
		logger.Error("seed department failed", zap.String("name", d.NameFr), zap.Error(err))
	}
}

func seedCategory(db *gorm.DB, logger *zap.Logger, c models.Category) {
	var count int64
	db.Model(&models.Category{}).Where("name_fr = ?", c.NameFr).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&c).Error; err != nil {
		logger.Error("seed category failed", zap.String("name", c.NameFr), zap.Error(err))
	}
}

func seedLocation(db *gorm.DB, logger *zap.Logger, nameAr, nameFr, departmentFr string) {
	var department models.Department
	if err := db.First(&department, "name_fr = ?", departmentFr).Error; err != nil {
		logger.Error("seed location: department missing", zap.String("department", departmentFr))
		return
	}
	var count int64
	db.Model(&models.Location{}).Where("name_fr = ? AND department_id = ?", nameFr, department.ID).Count(&count)
	if count > 0 {
		return
	}
	location := models.Location{NameAr: nameAr, NameFr: nameFr, DepartmentID: department.ID}
	if err := db.Create(&location).Error; err != nil {
		logger.Error("seed location failed", zap.String("name", nameFr), zap.Error(err))
	}
}

func seedAdmin(db *gorm.DB, logger *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash admin password failed", zap.Error(err))
		return
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.Error("seed admin failed", zap.Error(err))
		return
	}
	logger.Info("admin account created", zap.String("email", email))
}
