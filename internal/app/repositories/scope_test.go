package repositories

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/lrms/internal/app/models"
)

var (
	plCaller       = models.Identity{UserID: 1, Role: models.RolePL}
	prlCaller      = models.Identity{UserID: 2, Role: models.RolePRL}
	lecturerCaller = models.Identity{UserID: 7, Role: models.RoleLecturer}
	studentCaller  = models.Identity{UserID: 9, Role: models.RoleStudent}
)

func mustSQL(t *testing.T, q squirrel.Sqlizer) (string, []interface{}) {
	t.Helper()
	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	return sql, args
}

func TestReportScopeByRole(t *testing.T) {
	repo := NewReportRepository(nil)

	tests := []struct {
		name     string
		caller   models.Identity
		contains string
		args     []interface{}
	}{
		{"pl sees all", plCaller, "", nil},
		{"prl sees all", prlCaller, "", nil},
		{"lecturer sees own", lecturerCaller, "WHERE r.lecturer_id = $1", []interface{}{int64(7)}},
		{"student sees enrolled modules", studentCaller,
			"WHERE r.module_id IN (SELECT e.module_id FROM enrollments e WHERE e.student_id = $1)", []interface{}{int64(9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := mustSQL(t, repo.listQuery(tt.caller))
			if tt.contains == "" {
				if strings.Contains(sql, "WHERE") {
					t.Fatalf("unexpected WHERE for %s: %s", tt.caller.Role, sql)
				}
			} else if !strings.Contains(sql, tt.contains) {
				t.Fatalf("sql %q does not contain %q", sql, tt.contains)
			}
			if len(args) != len(tt.args) || (len(args) > 0 && !reflect.DeepEqual(args, tt.args)) {
				t.Fatalf("args = %v, want %v", args, tt.args)
			}
		})
	}
}

func TestCourseScopeLecturer(t *testing.T) {
	repo := NewCourseRepository(nil)

	sql, args := mustSQL(t, repo.listQuery(lecturerCaller))
	want := "EXISTS (SELECT 1 FROM modules sm WHERE sm.course_id = c.id AND sm.lecturer_id = $1)"
	if !strings.Contains(sql, want) {
		t.Fatalf("sql %q does not contain %q", sql, want)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(7)}) {
		t.Fatalf("args = %v", args)
	}

	for _, caller := range []models.Identity{studentCaller, prlCaller, plCaller} {
		sql, _ := mustSQL(t, repo.listQuery(caller))
		if strings.Contains(sql, "WHERE") {
			t.Fatalf("%s should see every course: %s", caller.Role, sql)
		}
	}
}

func TestModuleScope(t *testing.T) {
	repo := NewModuleRepository(nil)

	sql, args := mustSQL(t, repo.listQuery(lecturerCaller, 0))
	if !strings.Contains(sql, "m.lecturer_id = $1") || !reflect.DeepEqual(args, []interface{}{int64(7)}) {
		t.Fatalf("lecturer modules: %s %v", sql, args)
	}

	sql, args = mustSQL(t, repo.listQuery(studentCaller, 4))
	if !strings.Contains(sql, "m.id IN (SELECT e.module_id FROM enrollments e WHERE e.student_id = $1)") ||
		!strings.Contains(sql, "m.course_id = $2") {
		t.Fatalf("student modules: %s", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(9), int64(4)}) {
		t.Fatalf("student module args = %v", args)
	}

	sql, _ = mustSQL(t, repo.listQuery(prlCaller, 0))
	if strings.Contains(sql, "WHERE") {
		t.Fatalf("prl should see every module: %s", sql)
	}
}

func TestClassScope(t *testing.T) {
	repo := NewClassRepository(nil)

	sql, args := mustSQL(t, repo.listQuery(lecturerCaller))
	if !strings.Contains(sql, "cl.module_id IN (SELECT lm.id FROM modules lm WHERE lm.lecturer_id = $1)") {
		t.Fatalf("lecturer classes: %s", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(7)}) {
		t.Fatalf("args = %v", args)
	}

	sql, _ = mustSQL(t, repo.listQuery(studentCaller))
	if strings.Contains(sql, "WHERE") {
		t.Fatalf("students see every class: %s", sql)
	}
}

func TestRatingScope(t *testing.T) {
	repo := NewRatingRepository(nil)

	sql, args := mustSQL(t, repo.listQuery(lecturerCaller))
	if !strings.Contains(sql, "rt.user_id = $1 OR rt.report_id IN (SELECT lr.id FROM reports lr WHERE lr.lecturer_id = $2)") {
		t.Fatalf("lecturer ratings: %s", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(7), int64(7)}) {
		t.Fatalf("args = %v", args)
	}

	sql, args = mustSQL(t, repo.listQuery(studentCaller))
	if !strings.Contains(sql, "rt.user_id = $1") || !reflect.DeepEqual(args, []interface{}{int64(9)}) {
		t.Fatalf("student ratings: %s %v", sql, args)
	}
}

func TestUnknownRoleSeesNothing(t *testing.T) {
	ghost := models.Identity{UserID: 5, Role: "admin"}
	checks := map[string]squirrel.Sqlizer{
		"reports": NewReportRepository(nil).listQuery(ghost),
		"courses": NewCourseRepository(nil).listQuery(ghost),
		"modules": NewModuleRepository(nil).listQuery(ghost, 0),
		"classes": NewClassRepository(nil).listQuery(ghost),
		"ratings": NewRatingRepository(nil).listQuery(ghost),
	}
	for name, q := range checks {
		sql, _ := mustSQL(t, q)
		if !strings.Contains(sql, "WHERE 1 = 0") {
			t.Fatalf("%s: unknown role not denied: %s", name, sql)
		}
	}
}

func TestScopedQueryIsIdempotent(t *testing.T) {
	repo := NewReportRepository(nil)
	for _, caller := range []models.Identity{plCaller, lecturerCaller, studentCaller} {
		sql1, args1 := mustSQL(t, repo.listQuery(caller))
		sql2, args2 := mustSQL(t, repo.listQuery(caller))
		if sql1 != sql2 || !reflect.DeepEqual(args1, args2) {
			t.Fatalf("%s: query differs between builds:\n%s\n%s", caller.Role, sql1, sql2)
		}
	}
}

func TestReportSearchKeepsScope(t *testing.T) {
	repo := NewReportRepository(nil)
	sql, args := mustSQL(t, repo.searchQuery(lecturerCaller, "net"))

	for _, want := range []string{
		"r.lecturer_id = $1",
		"r.course_name ILIKE $2",
		"r.class_name ILIKE $3",
		"r.topic_taught ILIKE $4",
		"sm.name ILIKE $5",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("search sql %q missing %q", sql, want)
		}
	}
	if len(args) != 5 || args[0] != int64(7) || args[1] != "%net%" {
		t.Fatalf("args = %v", args)
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	if got := containsPattern(" 50%_off "); got != `%50\%\_off%` {
		t.Fatalf("containsPattern = %q", got)
	}
}

func TestSetFeedbackOnlyTouchesFeedback(t *testing.T) {
	sql, args := mustSQL(t, NewReportRepository(nil).setFeedbackQuery(3, "Good pacing"))

	set := sql[strings.Index(sql, "SET")+len("SET") : strings.Index(sql, "WHERE")]
	if strings.TrimSpace(set) != "prl_feedback = $1" {
		t.Fatalf("SET clause = %q", set)
	}
	if !reflect.DeepEqual(args, []interface{}{"Good pacing", int64(3)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestMonitoringQueries(t *testing.T) {
	repo := NewMonitoringRepository(nil)

	sql, args := mustSQL(t, repo.reportStatsQuery(0))
	if strings.Contains(sql, "WHERE") || len(args) != 0 {
		t.Fatalf("program stats should be unfiltered: %s", sql)
	}

	sql, args = mustSQL(t, repo.ratingStatsQuery(7))
	if !strings.Contains(sql, "JOIN reports r ON r.id = rt.report_id") || !strings.Contains(sql, "r.lecturer_id = $1") {
		t.Fatalf("lecturer rating stats: %s", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(7)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestScopesByRoleClass(t *testing.T) {
	scopes := map[string]func(models.Identity) squirrel.Sqlizer{
		"course": courseScope,
		"module": moduleScope,
		"class":  classScope,
		"report": reportScope,
		"rating": ratingScope,
	}
	unknown := models.Identity{UserID: 3, Role: models.Role("admin")}

	for name, scope := range scopes {
		for _, caller := range []models.Identity{plCaller, prlCaller} {
			if pred := scope(caller); pred != nil {
				t.Fatalf("%s scope for %s = %v, want nil", name, caller.Role, pred)
			}
		}
		if pred := scope(lecturerCaller); pred == nil {
			t.Fatalf("%s scope for lecturer must filter", name)
		}
		pred := scope(unknown)
		if pred == nil {
			t.Fatalf("%s scope for unknown role must not be nil", name)
		}
		if sql, _ := mustSQL(t, pred); sql != "1 = 0" {
			t.Fatalf("%s scope for unknown role = %q, want deny", name, sql)
		}
	}
}
