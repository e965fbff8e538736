package services

import (
	"time"

	"schoolPortal/internal/models"
)

// DefaultUsers are the demo accounts, one per role.
func DefaultUsers(now time.Time) []models.User {
	return []models.User{
		{ID: 1, Name: "Administrador", Email: "admin@escola.com", Password: "admin123", Role: models.RoleAdmin, CreatedAt: now},
		{ID: 2, Name: "Professor Teste", Email: "professor@escola.com", Password: "professor123", Role: models.RoleTeacher, CreatedAt: now},
		{ID: 3, Name: "Aluno Teste", Email: "aluno@escola.com", Password: "aluno123", Role: models.RoleStudent, CreatedAt: now},
	}
}

func DefaultStudents(now time.Time) []models.Student {
	return []models.Student{
		{
			ID: 1, Name: "João Silva", Email: "joao.silva@escola.com", BirthDate: "2000-05-15",
			Course: "engenharia-software", Enrollment: "AL2024001", Phone: "(11) 99999-9999",
			Status: models.StatusActive, Address: "Rua das Flores, 123 - São Paulo, SP", CreatedAt: now,
		},
		{
			ID: 2, Name: "Maria Santos", Email: "maria.santos@escola.com", BirthDate: "2001-08-22",
			Course: "ciencia-computacao", Enrollment: "AL2024002", Phone: "(11) 98888-8888",
			Status: models.StatusActive, Address: "Av. Paulista, 1000 - São Paulo, SP", CreatedAt: now,
		},
		{
			ID: 3, Name: "Pedro Costa", Email: "pedro.costa@escola.com", BirthDate: "1999-12-05",
			Course: "ads", Enrollment: "AL2024003", Phone: "(11) 97777-7777",
			Status: models.StatusInactive, Address: "Rua Augusta, 500 - São Paulo, SP", CreatedAt: now,
		},
		{
			ID: 4, Name: "Ana Oliveira", Email: "ana.oliveira@escola.com", BirthDate: "2002-03-30",
			Course: "sistemas-informacao", Enrollment: "AL2024004", Phone: "(11) 96666-6666",
			Status: models.StatusActive, Address: "Rua Consolação, 2000 - São Paulo, SP", CreatedAt: now,
		},
	}
}

func DefaultTeachers(now time.Time) []models.Teacher {
	return []models.Teacher{
		{
			ID: 1, Name: "Carlos Mendes", Email: "carlos.mendes@escola.com", Specialty: "Programação e Algoritmos",
			Degree: models.DegreeDoctorate, Registry: "PROF001", Phone: "(11) 95555-5555",
			Status: models.StatusActive, HireDate: "2020-01-15", CreatedAt: now,
		},
		{
			ID: 2, Name: "Fernanda Lima", Email: "fernanda.lima@escola.com", Specialty: "Banco de Dados",
			Degree: models.DegreeMasters, Registry: "PROF002", Phone: "(11) 94444-4444",
			Status: models.StatusActive, HireDate: "2021-03-10", CreatedAt: now,
		},
		{
			ID: 3, Name: "Roberto Alves", Email: "roberto.alves@escola.com", Specialty: "Engenharia de Software",
			Degree: models.DegreeDoctorate, Registry: "PROF003", Phone: "(11) 93333-3333",
			Status: models.StatusActive, HireDate: "2019-08-22", CreatedAt: now,
		},
		{
			ID: 4, Name: "Patricia Santos", Email: "patricia.santos@escola.com", Specialty: "Redes de Computadores",
			Degree: models.DegreeSpecialization, Registry: "PROF004", Phone: "(11) 92222-2222",
			Status: models.StatusOnLeave, HireDate: "2022-02-28", CreatedAt: now,
		},
		{
			ID: 5, Name: "Thayse Fonseca", Email: "thayse.fonseca@escola.com", Specialty: "Quality Assurance",
			Degree: models.DegreeSpecialization, Registry: "PROF005", Phone: "(11) 92222-0001",
			Status: models.StatusOnLeave, HireDate: "2025-02-28", CreatedAt: now,
		},
	}
}

func DefaultCourses() []models.Course {
	return []models.Course{
		{
			ID: "engenharia-software", Name: "Engenharia de Software",
			Description: "Formação em desenvolvimento de software com foco em qualidade, processos e gestão de projetos.",
			Duration:    8, Period: models.PeriodFullTime, Coordinator: "Prof. Dr. Carlos Mendes",
			Status: models.StatusActive, Seats: 50, AvailableSeats: 25, CreatedOn: "2020-01-01",
		},
		{
			ID: "ciencia-computacao", Name: "Ciência da Computação",
			Description: "Formação teórica e prática em computação com ênfase em algoritmos, inteligência artificial e teoria da computação.",
			Duration:    8, Period: models.PeriodMorning, Coordinator: "Prof. Dra. Ana Silva",
			Status: models.StatusActive, Seats: 40, AvailableSeats: 15, CreatedOn: "2019-01-01",
		},
		{
			ID: "ads", Name: "Análise e Desenvolvimento de Sistemas",
			Description: "Curso tecnológico focado em desenvolvimento prático de sistemas e aplicações.",
			Duration:    5, Period: models.PeriodEvening, Coordinator: "Prof. Me. Roberto Alves",
			Status: models.StatusActive, Seats: 60, AvailableSeats: 30, CreatedOn: "2021-01-01",
		},
		{
			ID: "sistemas-informacao", Name: "Sistemas de Informação",
			Description: "Integração entre tecnologia da informação e negócios, com foco em gestão e tomada de decisão.",
			Duration:    8, Period: models.PeriodAfternoon, Coordinator: "Prof. Dra. Fernanda Lima",
			Status: models.StatusActive, Seats: 45, AvailableSeats: 20, CreatedOn: "2020-01-01",
		},
	}
}
