package entities

// Doctor represents a practitioner listed in the directory
type Doctor struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	DepartmentID    string   `json:"departmentId" yaml:"departmentId"`
	Title           string   `json:"title" yaml:"title"`
	Languages       []string `json:"languages" yaml:"languages"`
	ExperienceYears int      `json:"experienceYears" yaml:"experienceYears"`
}

func (d Doctor) clone() Doctor {
	d.Languages = append([]string(nil), d.Languages...)
	return d
}
