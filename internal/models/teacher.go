package models

import "time"

// Academic degrees a teacher may hold.
const (
	DegreeUndergraduate  = "graduacao"
	DegreeSpecialization = "especializacao"
	DegreeMasters        = "mestrado"
	DegreeDoctorate      = "doutorado"
)

type Teacher struct {
	ID        int       `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Specialty string    `json:"especialidade"`
	Degree    string    `json:"formacao"`
	Registry  string    `json:"registro"`
	Phone     string    `json:"telefone"`
	Status    string    `json:"status"`
	HireDate  string    `json:"dataAdmissao"`
	CreatedAt time.Time `json:"dataCadastro"`
}

type NewTeacher struct {
	Name      string `json:"nome" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Specialty string `json:"especialidade"`
	Degree    string `json:"formacao" validate:"omitempty,oneof=graduacao especializacao mestrado doutorado"`
	Registry  string `json:"registro"`
	Phone     string `json:"telefone"`
	Status    string `json:"status" validate:"omitempty,oneof=ativo inativo afastado"`
	HireDate  string `json:"dataAdmissao" validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"senha" validate:"omitempty,min=6"`
}

type TeacherPatch struct {
	Name      *string `json:"nome,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Specialty *string `json:"especialidade,omitempty"`
	Degree    *string `json:"formacao,omitempty" validate:"omitempty,oneof=graduacao especializacao mestrado doutorado"`
	Registry  *string `json:"registro,omitempty"`
	Phone     *string `json:"telefone,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=ativo inativo afastado"`
	HireDate  *string `json:"dataAdmissao,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (p TeacherPatch) Apply(t *Teacher) {
	setIf(&t.Name, p.Name)
	setIf(&t.Email, p.Email)
	setIf(&t.Specialty, p.Specialty)
	setIf(&t.Degree, p.Degree)
	setIf(&t.Registry, p.Registry)
	setIf(&t.Phone, p.Phone)
	setIf(&t.Status, p.Status)
	setIf(&t.HireDate, p.HireDate)
}
