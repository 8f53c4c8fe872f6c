package domain

// RoleCount is the number of users holding one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// StatusCount is the number of vacancies in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ApplicationStats struct {
	Total           int64 `json:"total"`
	UniqueStudents  int64 `json:"unique_students"`
	UniqueVacancies int64 `json:"unique_vacancies"`
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	Users        []RoleCount      `json:"users"`
	Vacancies    []StatusCount    `json:"vacancies"`
	Applications ApplicationStats `json:"applications"`
}
