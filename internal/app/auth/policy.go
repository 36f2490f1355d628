// Package auth holds the route authorization table consulted by the
// Authorize middleware.
package auth

import (
	"net/http"

	"github.com/yigit/lrms/internal/app/models"
)

// Policy maps "METHOD /full/route/template" to the roles allowed to call it.
// A route without an entry admits any authenticated role.
type Policy map[string][]models.Role

// Key builds a policy key from a method and a gin route template.
func Key(method, path string) string {
	return method + " " + path
}

// DefaultPolicy is the role table for routes mounted under base.
func DefaultPolicy(base string) Policy {
	pl := []models.Role{models.RolePL}
	reviewers := []models.Role{models.RolePL, models.RolePRL}

	p := Policy{}
	add := func(method, path string, roles []models.Role) {
		p[Key(method, base+path)] = roles
	}

	add(http.MethodPost, "/faculties", pl)
	add(http.MethodPost, "/courses", pl)
	add(http.MethodPost, "/modules", pl)
	add(http.MethodPut, "/modules/:id/assign", pl)
	add(http.MethodPost, "/modules/:id/enrollments", []models.Role{models.RoleStudent, models.RolePL})

	add(http.MethodPost, "/classes", []models.Role{models.RoleLecturer, models.RolePRL, models.RolePL})

	add(http.MethodPost, "/reports", []models.Role{models.RoleLecturer})
	add(http.MethodPut, "/reports/:id/feedback", []models.Role{models.RolePRL})
	add(http.MethodGet, "/reports/export", reviewers)

	add(http.MethodGet, "/monitoring/program", pl)
	add(http.MethodGet, "/monitoring/logs", pl)
	add(http.MethodGet, "/monitoring/attendance", reviewers)
	add(http.MethodGet, "/monitoring/lecturer", []models.Role{models.RoleLecturer})

	add(http.MethodGet, "/users/lecturers", reviewers)

	student := []models.Role{models.RoleStudent}
	add(http.MethodGet, "/students/me/attendance", student)
	add(http.MethodGet, "/students/me/feedback", student)
	add(http.MethodGet, "/students/me/feedback/export", student)

	return p
}

// Allows reports whether role may call method on the route template path.
func (p Policy) Allows(method, path string, role models.Role) bool {
	roles, ok := p[Key(method, path)]
	if !ok {
		return role.Valid()
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
