package models

import "strings"

// Faculty groups courses. Codes are unique and stored upper-case.
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Normalize trims the name and upper-cases the code.
func (f *Faculty) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Code = strings.ToUpper(strings.TrimSpace(f.Code))
}
