package domain

import "time"

type Website struct {
	ID        string
	Name      string
	Domain    string
	UserID    string // empty when owned by a team
	TeamID    string
	DeletedAt *time.Time
}

func (w *Website) Deleted() bool {
	return w.DeletedAt != nil
}
