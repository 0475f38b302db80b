package entities

import (
	"errors"
	"fmt"
	"regexp"
)

var timeslotRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Catalog is the immutable dataset behind the site: departments, doctors and
// bookable timeslots. Accessors hand out copies so callers cannot mutate it.
type Catalog struct {
	departments []Department
	doctors     []Doctor
	timeslots   []string
}

// NewCatalog copies the given slices into a new catalog.
func NewCatalog(departments []Department, doctors []Doctor, timeslots []string) *Catalog {
	c := &Catalog{
		departments: append([]Department(nil), departments...),
		doctors:     make([]Doctor, 0, len(doctors)),
		timeslots:   append([]string(nil), timeslots...),
	}
	for _, d := range doctors {
		c.doctors = append(c.doctors, d.clone())
	}
	return c
}

// Departments returns the departments in catalog order
func (c *Catalog) Departments() []Department {
	return append([]Department(nil), c.departments...)
}

// Doctors returns the doctors in catalog order
func (c *Catalog) Doctors() []Doctor {
	out := make([]Doctor, 0, len(c.doctors))
	for _, d := range c.doctors {
		out = append(out, d.clone())
	}
	return out
}

// Timeslots returns the bookable times in catalog order
func (c *Catalog) Timeslots() []string {
	return append([]string(nil), c.timeslots...)
}

// Department looks up a department by id
func (c *Catalog) Department(id string) (Department, bool) {
	for _, d := range c.departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// Validate checks referential integrity of the dataset. It runs once when a
// catalog is loaded; the directory functions assume a valid catalog.
func (c *Catalog) Validate() error {
	var errs []error

	departments := make(map[string]bool, len(c.departments))
	for _, d := range c.departments {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("department %q has an empty id", d.Name))
			continue
		}
		if departments[d.ID] {
			errs = append(errs, fmt.Errorf("duplicate department id %q", d.ID))
		}
		departments[d.ID] = true
	}

	doctors := make(map[string]bool, len(c.doctors))
	for _, d := range c.doctors {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("doctor %q has an empty id", d.Name))
			continue
		}
		if doctors[d.ID] {
			errs = append(errs, fmt.Errorf("duplicate doctor id %q", d.ID))
		}
		doctors[d.ID] = true
		if !departments[d.DepartmentID] {
			errs = append(errs, fmt.Errorf("doctor %q references unknown department %q", d.ID, d.DepartmentID))
		}
		if d.ExperienceYears < 0 {
			errs = append(errs, fmt.Errorf("doctor %q has negative experience", d.ID))
		}
	}

	for _, slot := range c.timeslots {
		if !timeslotRe.MatchString(slot) {
			errs = append(errs, fmt.Errorf("timeslot %q is not HH:MM", slot))
		}
	}

	return errors.Join(errs...)
}
