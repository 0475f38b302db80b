package entities

// Department represents a medical specialty grouping doctors
type Department struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
