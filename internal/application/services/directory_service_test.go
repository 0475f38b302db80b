package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitalsite/internal/adapters/catalog"
	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalsite/pkg/errors"
)

func defaultCatalog(t *testing.T) *entities.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func names(doctors []entities.Doctor) []string {
	out := make([]string, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.Name)
	}
	return out
}

func TestFilterDoctors_Examples(t *testing.T) {
	doctors := defaultCatalog(t).Doctors()

	tests := []struct {
		name       string
		query      string
		department string
		want       []string
	}{
		{"by name", "brown", "", []string{"Dr. Alice Brown"}},
		{"by department", "", "neurology", []string{"Dr. Brian Chen"}},
		{"by title case-insensitive", "SURGEON", "", []string{"Dr. Carla Gomez"}},
		{"query is trimmed", "  chen ", "", []string{"Dr. Brian Chen"}},
		{"query and department disagree", "brown", "neurology", []string{}},
		{"unknown department", "", "radiology", []string{}},
		{"shared substring keeps order", "ologist", "", []string{
			"Dr. Alice Brown", "Dr. Brian Chen", "Dr. Elena Petrova", "Dr. Faisal Ahmed",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(services.FilterDoctors(doctors, tt.query, tt.department)))
		})
	}
}

func TestFilterDoctors_EmptyFilterIsIdentity(t *testing.T) {
	doctors := defaultCatalog(t).Doctors()
	assert.Equal(t, doctors, services.FilterDoctors(doctors, "", ""))
	assert.Empty(t, services.FilterDoctors(nil, "brown", "cardiology"))
}

func TestFilterDoctors_SoundAndComplete(t *testing.T) {
	c := defaultCatalog(t)
	doctors := c.Doctors()

	queries := []string{"", "dr", "a", "ist", "brown", "ONCO", "xyz", " pediatric "}
	departments := []string{""}
	for _, d := range c.Departments() {
		departments = append(departments, d.ID)
	}

	for _, q := range queries {
		for _, p := range departments {
			got := services.FilterDoctors(doctors, q, p)
			in := make(map[string]bool, len(got))
			for _, d := range got {
				in[d.ID] = true
			}

			needle := strings.ToLower(strings.TrimSpace(q))
			for _, d := range doctors {
				matches := (needle == "" ||
					strings.Contains(strings.ToLower(d.Name), needle) ||
					strings.Contains(strings.ToLower(d.Title), needle)) &&
					(p == "" || d.DepartmentID == p)
				assert.Equal(t, matches, in[d.ID], "q=%q p=%q doctor=%s", q, p, d.ID)
			}
		}
	}
}

func TestDoctorsForDepartment(t *testing.T) {
	doctors := defaultCatalog(t).Doctors()

	assert.Equal(t, doctors, services.DoctorsForDepartment(doctors, ""))

	cardiology := services.DoctorsForDepartment(doctors, "cardiology")
	require.Len(t, cardiology, 1)
	for _, d := range cardiology {
		assert.Equal(t, "cardiology", d.DepartmentID)
	}
}

func TestDirectoryService(t *testing.T) {
	ctx := context.Background()
	svc := services.NewDirectoryService(defaultCatalog(t))

	assert.Len(t, svc.Departments(ctx), 6)
	assert.Len(t, svc.Doctors(ctx), 6)
	assert.Len(t, svc.Timeslots(ctx), 13)
	assert.Equal(t, []string{"Dr. Alice Brown"}, names(svc.SearchDoctors(ctx, "brown", "")))

	doctors, err := svc.DepartmentDoctors(ctx, "neurology")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Brian Chen"}, names(doctors))

	all, err := svc.DepartmentDoctors(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = svc.DepartmentDoctors(ctx, "radiology")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDirectoryService_DepartmentName(t *testing.T) {
	svc := services.NewDirectoryService(defaultCatalog(t))

	assert.Equal(t, "Cardiology", svc.DepartmentName("cardiology"))
	assert.Equal(t, services.UnknownDepartmentName, svc.DepartmentName("radiology"))
	assert.Equal(t, services.UnknownDepartmentName, svc.DepartmentName(""))
}
