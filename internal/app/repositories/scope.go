package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/lrms/internal/app/models"
)

// The predicates below are the only place row visibility is decided. Each
// returns nil when the caller sees every row. Unknown roles see nothing.
// Roles that CanSeeAll never reach the per-role switches.

var denyAll = squirrel.Expr("1 = 0")

const enrolledModules = "SELECT e.module_id FROM enrollments e WHERE e.student_id = ?"

// courseScope expects courses aliased as c.
func courseScope(caller models.Identity) squirrel.Sqlizer {
	if caller.Role.CanSeeAll() {
		return nil
	}
	switch caller.Role {
	case models.RoleLecturer:
		return squirrel.Expr(
			"EXISTS (SELECT 1 FROM modules sm WHERE sm.course_id = c.id AND sm.lecturer_id = ?)",
			caller.UserID)
	case models.RoleStudent:
		return nil
	}
	return denyAll
}

// moduleScope expects modules aliased as m.
func moduleScope(caller models.Identity) squirrel.Sqlizer {
	if caller.Role.CanSeeAll() {
		return nil
	}
	switch caller.Role {
	case models.RoleLecturer:
		return squirrel.Eq{"m.lecturer_id": caller.UserID}
	case models.RoleStudent:
		return squirrel.Expr("m.id IN ("+enrolledModules+")", caller.UserID)
	}
	return denyAll
}

// classScope expects classes aliased as cl.
func classScope(caller models.Identity) squirrel.Sqlizer {
	if caller.Role.CanSeeAll() {
		return nil
	}
	switch caller.Role {
	case models.RoleLecturer:
		return squirrel.Expr(
			"cl.module_id IN (SELECT lm.id FROM modules lm WHERE lm.lecturer_id = ?)",
			caller.UserID)
	case models.RoleStudent:
		return nil
	}
	return denyAll
}

// reportScope expects reports aliased as r.
func reportScope(caller models.Identity) squirrel.Sqlizer {
	if caller.Role.CanSeeAll() {
		return nil
	}
	switch caller.Role {
	case models.RoleLecturer:
		return squirrel.Eq{"r.lecturer_id": caller.UserID}
	case models.RoleStudent:
		return squirrel.Expr("r.module_id IN ("+enrolledModules+")", caller.UserID)
	}
	return denyAll
}

// ratingScope expects ratings aliased as rt.
func ratingScope(caller models.Identity) squirrel.Sqlizer {
	if caller.Role.CanSeeAll() {
		return nil
	}
	switch caller.Role {
	case models.RoleLecturer:
		return squirrel.Or{
			squirrel.Eq{"rt.user_id": caller.UserID},
			squirrel.Expr("rt.report_id IN (SELECT lr.id FROM reports lr WHERE lr.lecturer_id = ?)", caller.UserID),
		}
	case models.RoleStudent:
		return squirrel.Eq{"rt.user_id": caller.UserID}
	}
	return denyAll
}

func scoped(q squirrel.SelectBuilder, pred squirrel.Sqlizer) squirrel.SelectBuilder {
	if pred == nil {
		return q
	}
	return q.Where(pred)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE substring pattern with the
// wildcard characters escaped.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
}

// anyILike matches pattern against any of the columns.
func anyILike(pattern string, columns ...string) squirrel.Or {
	or := make(squirrel.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}
