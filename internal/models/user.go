package models

import "time"

// User is a login-capable account.
type User struct {
	ID         int        `json:"id"`
	Name       string     `json:"nome"`
	Email      string     `json:"email"`
	Password   string     `json:"senha,omitempty"`
	Role       Role       `json:"tipo"`
	CreatedAt  time.Time  `json:"dataCadastro"`
	LastAccess *time.Time `json:"ultimoAcesso"`
}

// WithoutPassword returns a copy safe to hand to clients.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// NewUser is the input for creating a User.
type NewUser struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
	Role     Role   `json:"tipo" validate:"required,oneof=admin professor aluno"`
}

// UserPatch changes only the fields that are set.
type UserPatch struct {
	Name       *string    `json:"nome,omitempty" validate:"omitempty,min=1"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string    `json:"senha,omitempty" validate:"omitempty,min=6"`
	Role       *Role      `json:"tipo,omitempty" validate:"omitempty,oneof=admin professor aluno"`
	LastAccess *time.Time `json:"ultimoAcesso,omitempty"`
}

func (p UserPatch) Apply(u *User) {
	setIf(&u.Name, p.Name)
	setIf(&u.Email, p.Email)
	setIf(&u.Password, p.Password)
	setIf(&u.Role, p.Role)
	if p.LastAccess != nil {
		t := *p.LastAccess
		u.LastAccess = &t
	}
}

// Role is a user's type. Roles are ordered admin > professor > aluno.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "professor"
	RoleStudent Role = "aluno"
)

// Level ranks the role; unknown roles rank 0.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleTeacher:
		return 2
	case RoleStudent:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether r is allowed wherever required is. Admin passes
// every check.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r.Level() >= required.Level()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
