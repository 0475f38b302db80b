package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCatalog() *Catalog {
	return NewCatalog(
		[]Department{{ID: "cardiology", Name: "Cardiology"}},
		[]Doctor{{ID: "d1", Name: "Dr. Alice Brown", DepartmentID: "cardiology", Languages: []string{"English"}}},
		[]string{"09:00"},
	)
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := sampleCatalog()

	doctors := c.Doctors()
	doctors[0].Name = "changed"
	doctors[0].Languages[0] = "changed"

	again := c.Doctors()
	assert.Equal(t, "Dr. Alice Brown", again[0].Name)
	assert.Equal(t, []string{"English"}, again[0].Languages)

	slots := c.Timeslots()
	slots[0] = "23:59"
	assert.Equal(t, []string{"09:00"}, c.Timeslots())
}

func TestCatalog_Department(t *testing.T) {
	c := sampleCatalog()

	d, ok := c.Department("cardiology")
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", d.Name)

	_, ok = c.Department("oncology")
	assert.False(t, ok)
}

func TestCatalog_Validate(t *testing.T) {
	assert.NoError(t, sampleCatalog().Validate())

	bad := NewCatalog(
		[]Department{{ID: "cardiology"}, {ID: "cardiology"}},
		[]Doctor{
			{ID: "d1", DepartmentID: "neurology"},
			{ID: "d1", DepartmentID: "cardiology", ExperienceYears: -2},
		},
		[]string{"9:00", "24:00", "13:30"},
	)
	err := bad.Validate()
	if assert.Error(t, err) {
		msg := err.Error()
		assert.Contains(t, msg, `duplicate department id "cardiology"`)
		assert.Contains(t, msg, `duplicate doctor id "d1"`)
		assert.Contains(t, msg, `unknown department "neurology"`)
		assert.Contains(t, msg, "negative experience")
		assert.Contains(t, msg, `timeslot "9:00"`)
		assert.Contains(t, msg, `timeslot "24:00"`)
		assert.NotContains(t, msg, `"13:30"`)
	}
}
