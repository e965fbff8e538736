package models

import "time"

// Status values shared by students and teachers.
const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
	StatusLocked   = "trancado"
	StatusOnLeave  = "afastado"
)

// Student is a person enrolled in a course.
type Student struct {
	ID         int       `json:"id"`
	Name       string    `json:"nome"`
	Email      string    `json:"email"`
	BirthDate  string    `json:"dataNascimento"`
	Course     string    `json:"curso"`
	Enrollment string    `json:"matricula"`
	Phone      string    `json:"telefone"`
	Status     string    `json:"status"`
	Address    string    `json:"endereco"`
	CPF        string    `json:"cpf,omitempty"`
	CreatedAt  time.Time `json:"dataCadastro"`
}

// NewStudent is the input for registering a student. Password, when empty,
// falls back to the default student password for the linked account.
type NewStudent struct {
	Name       string `json:"nome" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	BirthDate  string `json:"dataNascimento" validate:"omitempty,datetime=2006-01-02"`
	Course     string `json:"curso"`
	Enrollment string `json:"matricula"`
	Phone      string `json:"telefone"`
	Status     string `json:"status" validate:"omitempty,oneof=ativo inativo trancado"`
	Address    string `json:"endereco"`
	CPF        string `json:"cpf"`
	Password   string `json:"senha" validate:"omitempty,min=6"`
}

// StudentPatch changes only the fields that are set.
type StudentPatch struct {
	Name       *string `json:"nome,omitempty" validate:"omitempty,min=1"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	BirthDate  *string `json:"dataNascimento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Course     *string `json:"curso,omitempty"`
	Enrollment *string `json:"matricula,omitempty"`
	Phone      *string `json:"telefone,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=ativo inativo trancado"`
	Address    *string `json:"endereco,omitempty"`
	CPF        *string `json:"cpf,omitempty"`
}

func (p StudentPatch) Apply(s *Student) {
	setIf(&s.Name, p.Name)
	setIf(&s.Email, p.Email)
	setIf(&s.BirthDate, p.BirthDate)
	setIf(&s.Course, p.Course)
	setIf(&s.Enrollment, p.Enrollment)
	setIf(&s.Phone, p.Phone)
	setIf(&s.Status, p.Status)
	setIf(&s.Address, p.Address)
	setIf(&s.CPF, p.CPF)
}
