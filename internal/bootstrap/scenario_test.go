package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/lrms/internal/db"
)

// scenarioRouter connects to LRMS_TEST_DB, migrates it and returns the full
// router. Tests calling it are skipped when the variable is unset.
func scenarioRouter(t *testing.T) *gin.Engine {
	t.Helper()
	url := os.Getenv("LRMS_TEST_DB")
	if url == "" {
		t.Skip("LRMS_TEST_DB not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := RunMigrations(ctx, &db.PostgresDB{Pool: pool}, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := testConfig()
	deps, err := BuildDependencies(cfg, pool, zerolog.Nop())
	if err != nil {
		t.Fatalf("dependencies: %v", err)
	}
	return SetupRouter(testContext(t), cfg, deps, zerolog.Nop())
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c client) do(method, path, token string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

// signUp registers a staff account and returns its token.
func (c client) signUp(role, name, email string) string {
	c.t.Helper()
	body := map[string]string{"role": role, "name": name, "email": email, "password": "secret123"}
	if code := c.do(http.MethodPost, "/api/register", "", body, nil); code != http.StatusCreated {
		c.t.Fatalf("register %s: status %d", email, code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	login := map[string]string{"role": role, "email": email, "password": "secret123"}
	if code := c.do(http.MethodPost, "/api/login", "", login, &resp); code != http.StatusOK {
		c.t.Fatalf("login %s: status %d", email, code)
	}
	return resp.Token
}

type reportEnvelope struct {
	Success bool `json:"success"`
	Report  struct {
		ID          int64   `json:"id"`
		LecturerID  int64   `json:"lecturer_id"`
		PRLFeedback *string `json:"prl_feedback"`
	} `json:"report"`
}

func TestScenarioStudentRegistersAndLogsIn(t *testing.T) {
	c := client{t: t, router: scenarioRouter(t)}
	number := fmt.Sprintf("S100-%d", time.Now().UnixNano()%1e9)

	register := map[string]string{
		"role": "student", "name": "Student One", "student_number": number, "password": "secret123",
	}
	if code := c.do(http.MethodPost, "/api/register", "", register, nil); code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", code)
	}
	if code := c.do(http.MethodPost, "/api/register", "", register, nil); code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	login := map[string]string{"role": "student", "student_number": number, "password": "secret123"}
	if code := c.do(http.MethodPost, "/api/login", "", login, &resp); code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", code)
	}
	if resp.Token == "" || resp.User.Role != "student" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	login["password"] = "wrong-pass1"
	if code := c.do(http.MethodPost, "/api/login", "", login, nil); code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", code)
	}
}

func TestScenarioDuplicateCourseCode(t *testing.T) {
	c := client{t: t, router: scenarioRouter(t)}
	suffix := time.Now().UnixNano() % 1e9
	pl := c.signUp("pl", "Leader", fmt.Sprintf("pl-%d@lrms.test", suffix))

	var faculty struct {
		Faculty struct {
			ID int64 `json:"id"`
		} `json:"faculty"`
	}
	facultyBody := map[string]string{"name": "Scenario Faculty", "code": fmt.Sprintf("F%d", suffix)}
	if code := c.do(http.MethodPost, "/api/faculties", pl, facultyBody, &faculty); code != http.StatusCreated {
		t.Fatalf("create faculty: expected 201, got %d", code)
	}

	course := map[string]interface{}{
		"name": "Software Engineering", "code": fmt.Sprintf("SE%d", suffix), "faculty_id": faculty.Faculty.ID,
	}
	if code := c.do(http.MethodPost, "/api/courses", pl, course, nil); code != http.StatusOK {
		t.Fatalf("create course: expected 200, got %d", code)
	}
	if code := c.do(http.MethodPost, "/api/courses", pl, course, nil); code != http.StatusConflict {
		t.Fatalf("duplicate course: expected 409, got %d", code)
	}
}

func TestScenarioReportVisibilityAndFeedback(t *testing.T) {
	c := client{t: t, router: scenarioRouter(t)}
	suffix := time.Now().UnixNano() % 1e9
	lecturerA := c.signUp("lecturer", "Lecturer A", fmt.Sprintf("a-%d@lrms.test", suffix))
	lecturerB := c.signUp("lecturer", "Lecturer B", fmt.Sprintf("b-%d@lrms.test", suffix))
	prl := c.signUp("prl", "Principal", fmt.Sprintf("prl-%d@lrms.test", suffix))

	report := map[string]interface{}{
		"faculty_name": "FICT", "class_name": "BSCSM Y2", "week": 3, "lecture_date": "2025-03-10",
		"course_name": "Web Development", "course_code": "WD201", "students_present": 20,
		"total_students": 25, "topic_taught": "Routing", "lecturer_id": 999999,
	}
	var created reportEnvelope
	if code := c.do(http.MethodPost, "/api/reports", lecturerA, report, &created); code != http.StatusOK {
		t.Fatalf("create report: expected 200, got %d", code)
	}
	if created.Report.LecturerID == 999999 {
		t.Fatal("lecturer_id from the body must be ignored")
	}
	path := fmt.Sprintf("/api/reports/%d", created.Report.ID)

	if code := c.do(http.MethodGet, path, lecturerA, nil, nil); code != http.StatusOK {
		t.Fatalf("author read: expected 200, got %d", code)
	}
	if code := c.do(http.MethodGet, path, lecturerB, nil, nil); code != http.StatusNotFound {
		t.Fatalf("other lecturer read: expected 404, got %d", code)
	}

	var list struct {
		Reports []struct {
			ID int64 `json:"id"`
		} `json:"reports"`
	}
	c.do(http.MethodGet, "/api/reports", lecturerB, nil, &list)
	for _, r := range list.Reports {
		if r.ID == created.Report.ID {
			t.Fatal("lecturer B must not list lecturer A's report")
		}
	}

	feedback := map[string]string{"prl_feedback": "Good pacing"}
	if code := c.do(http.MethodPut, path+"/feedback", prl, feedback, nil); code != http.StatusOK {
		t.Fatalf("prl feedback: expected 200, got %d", code)
	}
	if code := c.do(http.MethodPut, path+"/feedback", lecturerA, feedback, nil); code != http.StatusForbidden {
		t.Fatalf("lecturer feedback: expected 403, got %d", code)
	}

	var read reportEnvelope
	c.do(http.MethodGet, path, lecturerA, nil, &read)
	if read.Report.PRLFeedback == nil || *read.Report.PRLFeedback != "Good pacing" {
		t.Fatalf("expected feedback to be visible to the author, got %+v", read.Report.PRLFeedback)
	}
}
