package models

// Shift a course runs in.
const (
	PeriodMorning   = "matutino"
	PeriodAfternoon = "vespertino"
	PeriodEvening   = "noturno"
	PeriodFullTime  = "integral"
)

// Course is identified by a slug. AvailableSeats stays within [0, Seats].
type Course struct {
	ID             string `json:"id"`
	Name           string `json:"nome"`
	Description    string `json:"descricao"`
	Duration       int    `json:"duracao"`
	Period         string `json:"periodo"`
	Coordinator    string `json:"coordenador"`
	Status         string `json:"status"`
	Seats          int    `json:"vagas"`
	AvailableSeats int    `json:"vagasDisponiveis"`
	CreatedOn      string `json:"dataCriacao"`
}

// ClampSeats forces AvailableSeats into [0, Seats].
func (c *Course) ClampSeats() {
	if c.Seats < 0 {
		c.Seats = 0
	}
	c.AvailableSeats = min(max(c.AvailableSeats, 0), c.Seats)
}

// NewCourse is the input for adding a course. An empty ID is derived from
// Name; a nil AvailableSeats means every seat is free.
type NewCourse struct {
	ID             string `json:"id" validate:"omitempty,max=64"`
	Name           string `json:"nome" validate:"required"`
	Description    string `json:"descricao"`
	Duration       int    `json:"duracao" validate:"gte=0"`
	Period         string `json:"periodo" validate:"omitempty,oneof=matutino vespertino noturno integral"`
	Coordinator    string `json:"coordenador"`
	Status         string `json:"status" validate:"omitempty,oneof=ativo inativo"`
	Seats          int    `json:"vagas" validate:"gte=0"`
	AvailableSeats *int   `json:"vagasDisponiveis"`
	CreatedOn      string `json:"dataCriacao" validate:"omitempty,datetime=2006-01-02"`
}

type CoursePatch struct {
	Name           *string `json:"nome,omitempty" validate:"omitempty,min=1"`
	Description    *string `json:"descricao,omitempty"`
	Duration       *int    `json:"duracao,omitempty" validate:"omitempty,gte=0"`
	Period         *string `json:"periodo,omitempty" validate:"omitempty,oneof=matutino vespertino noturno integral"`
	Coordinator    *string `json:"coordenador,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=ativo inativo"`
	Seats          *int    `json:"vagas,omitempty" validate:"omitempty,gte=0"`
	AvailableSeats *int    `json:"vagasDisponiveis,omitempty"`
}

// Apply sets the given fields and re-clamps the seat counts.
func (p CoursePatch) Apply(c *Course) {
	setIf(&c.Name, p.Name)
	setIf(&c.Description, p.Description)
	setIf(&c.Duration, p.Duration)
	setIf(&c.Period, p.Period)
	setIf(&c.Coordinator, p.Coordinator)
	setIf(&c.Status, p.Status)
	setIf(&c.Seats, p.Seats)
	setIf(&c.AvailableSeats, p.AvailableSeats)
	c.ClampSeats()
}
