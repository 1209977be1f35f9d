package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/config"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/routes"
	"github.com/unihub-dz/campus-report-backend/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return routes.SetupRouter(gin.New(), db), db
}

func tokenFor(t *testing.T, db *gorm.DB, role models.Role) (models.User, string) {
	t.Helper()
	user := models.User{
		Name:     "User " + string(role),
		Email:    string(role) + "-" + t.Name() + "@test.local",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID.String(), string(user.Role), false, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Amine",
		"email":    "amine@test.local",
		"password": "secret-pass-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("register should return a token")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "amine@test.local",
		"password": "secret-pass-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "amine@test.local",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad login: got %d", w.Code)
	}

	// Registration never yields an admin account.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Sneaky",
		"email":    "sneaky@test.local",
		"password": "secret-pass-1",
		"role":     "admin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got %d", w.Code)
	}
	body = decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	if user["role"] != "student" {
		t.Fatalf("expected demotion to student, got %v", user["role"])
	}
}

func TestAnonymousLogin(t *testing.T) {
	r, db := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"is_anonymous": true})
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous login: got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("anonymous login should return a token")
	}

	var count int64
	db.Model(&models.User{}).Where("is_anonymous = ?", true).Count(&count)
	if count != 1 {
		t.Fatalf("expected one anonymous account, got %d", count)
	}

	// An anonymous caller can file a report but not vote.
	department := models.Department{NameAr: "قسم", NameFr: "Département"}
	db.Create(&department)
	author, authorToken := tokenFor(t, db, models.RoleStudent)
	_ = author
	w = doJSON(t, r, http.MethodPost, "/api/suggestions", authorToken, gin.H{
		"title": "t", "description": "d", "department_id": department.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create suggestion: got %d: %s", w.Code, w.Body.String())
	}
	suggestion := decodeBody(t, w)["suggestion"].(map[string]interface{})

	w = doJSON(t, r, http.MethodPost, "/api/suggestions/"+suggestion["id"].(string)+"/vote", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous vote: got %d, want 403", w.Code)
	}
}

func TestRefreshKeepsAnonymousTTL(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"is_anonymous": true})
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous login: got %d: %s", w.Code, w.Body.String())
	}
	anonToken := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh-token", anonToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: got %d: %s", w.Code, w.Body.String())
	}
	refreshed := decodeBody(t, w)["token"].(string)

	claims, err := utils.VerifyToken(refreshed)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if !claims.IsAnonymous {
		t.Fatal("refreshed token must keep the anonymous flag")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != config.AnonymousTTL {
		t.Fatalf("anonymous refresh issued a %s token, want %s", ttl, config.AnonymousTTL)
	}
}

func TestRefreshRegularAccount(t *testing.T) {
	r, db := setupRouter(t)

	_, token := tokenFor(t, db, models.RoleStudent)
	w := doJSON(t, r, http.MethodPost, "/api/auth/refresh-token", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: got %d: %s", w.Code, w.Body.String())
	}
	refreshed := decodeBody(t, w)["token"].(string)

	claims, err := utils.VerifyToken(refreshed)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != config.TokenTTL {
		t.Fatalf("refresh issued a %s token, want %s", ttl, config.TokenTTL)
	}
}

func TestLogout(t *testing.T) {
	r, db := setupRouter(t)

	// A regular account logs out statelessly; the token stays valid until
	// it expires and the client is expected to discard it.
	_, token := tokenFor(t, db, models.RoleStudent)
	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/reports", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("regular token after logout: got %d", w.Code)
	}

	// An anonymous logout deactivates the throwaway account, so the token
	// is rejected from then on.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"is_anonymous": true})
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous login: got %d", w.Code)
	}
	anonToken := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", anonToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous logout: got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/reports", anonToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous token after logout: got %d, want 403", w.Code)
	}
}

func TestReportEndpointsEnforceAuth(t *testing.T) {
	r, db := setupRouter(t)

	department := models.Department{NameAr: "قسم", NameFr: "Département"}
	db.Create(&department)
	category := models.Category{NameAr: "صنف", NameFr: "Catégorie"}
	db.Create(&category)
	location := models.Location{NameAr: "قاعة", NameFr: "Salle", DepartmentID: department.ID}
	db.Create(&location)

	_, studentToken := tokenFor(t, db, models.RoleStudent)
	admin, adminToken := tokenFor(t, db, models.RoleAdmin)

	// No token: 401 before anything else.
	w := doJSON(t, r, http.MethodGet, "/api/reports", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reports", studentToken, gin.H{
		"title":       "Projector broken",
		"description": "The projector in Salle does not start",
		"category_id": category.ID,
		"location_id": location.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create report: got %d: %s", w.Code, w.Body.String())
	}
	report := decodeBody(t, w)["report"].(map[string]interface{})
	reportID := report["id"].(string)
	if report["status"] != "pending" {
		t.Fatalf("expected pending, got %v", report["status"])
	}

	// A student cannot change status, even on their own report.
	w = doJSON(t, r, http.MethodPatch, "/api/reports/"+reportID+"/status", studentToken, gin.H{
		"status": "resolved",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("student status change: got %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/reports/"+reportID+"/status", adminToken, gin.H{
		"status": "resolved", "comment": "replaced the bulb",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin status change: got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["report"].(map[string]interface{})
	if updated["status"] != "resolved" {
		t.Fatalf("expected resolved, got %v", updated["status"])
	}
	if updated["updated_by"] != admin.ID.String() {
		t.Fatalf("expected updated_by %s, got %v", admin.ID, updated["updated_by"])
	}

	// resolved is terminal: a further transition is a conflict.
	w = doJSON(t, r, http.MethodPatch, "/api/reports/"+reportID+"/status", adminToken, gin.H{
		"status": "in_progress",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("terminal transition: got %d, want 409", w.Code)
	}

	// Malformed id parameter.
	w = doJSON(t, r, http.MethodGet, "/api/reports/not-a-uuid", studentToken, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad id: got %d, want 422", w.Code)
	}
}

func TestVoteEndpointConflicts(t *testing.T) {
	r, db := setupRouter(t)

	department := models.Department{NameAr: "قسم", NameFr: "Département"}
	db.Create(&department)

	_, authorToken := tokenFor(t, db, models.RoleStudent)
	_, voterToken := tokenFor(t, db, models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/suggestions", authorToken, gin.H{
		"title": "t", "description": "d", "department_id": department.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create suggestion: got %d: %s", w.Code, w.Body.String())
	}
	id := decodeBody(t, w)["suggestion"].(map[string]interface{})["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/suggestions/"+id+"/vote", voterToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("vote: got %d: %s", w.Code, w.Body.String())
	}
	if count := decodeBody(t, w)["votes_count"].(float64); count != 1 {
		t.Fatalf("expected votes_count 1, got %v", count)
	}

	w = doJSON(t, r, http.MethodPost, "/api/suggestions/"+id+"/vote", voterToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate vote: got %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/suggestions/"+id+"/vote", voterToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unvote: got %d: %s", w.Code, w.Body.String())
	}
	if count := decodeBody(t, w)["votes_count"].(float64); count != 0 {
		t.Fatalf("expected votes_count 0, got %v", count)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/suggestions/"+id+"/vote", voterToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("repeated unvote: got %d, want 409", w.Code)
	}
}

func TestRoleGatesOnReferenceData(t *testing.T) {
	r, db := setupRouter(t)

	_, studentToken := tokenFor(t, db, models.RoleStudent)
	_, headToken := tokenFor(t, db, models.RoleDepartmentHead)
	_, adminToken := tokenFor(t, db, models.RoleAdmin)

	// Departments are admin-only to write.
	w := doJSON(t, r, http.MethodPost, "/api/departments", headToken, gin.H{
		"name_ar": "قسم جديد", "name_fr": "Nouveau Département",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("head creating department: got %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/departments", adminToken, gin.H{
		"name_ar": "قسم جديد", "name_fr": "Nouveau Département",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin creating department: got %d: %s", w.Code, w.Body.String())
	}

	// Categories are writable by admins and department heads, not students.
	w = doJSON(t, r, http.MethodPost, "/api/categories", studentToken, gin.H{
		"name_ar": "صنف", "name_fr": "Catégorie",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("student creating category: got %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/categories", headToken, gin.H{
		"name_ar": "صنف", "name_fr": "Catégorie",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("head creating category: got %d: %s", w.Code, w.Body.String())
	}

	// Everyone authenticated can read.
	w = doJSON(t, r, http.MethodGet, "/api/departments", studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("student listing departments: got %d", w.Code)
	}
}

func TestDeactivatedAccountRejected(t *testing.T) {
	r, db := setupRouter(t)

	user, token := tokenFor(t, db, models.RoleStudent)
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	w := doJSON(t, r, http.MethodGet, "/api/reports", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("deactivated account: got %d, want 403", w.Code)
	}
}
