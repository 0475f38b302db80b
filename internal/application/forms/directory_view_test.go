package forms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitalsite/internal/adapters/catalog"
	"github.com/zatekoja/hospitalsite/internal/application/forms"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
)

func TestDirectoryView(t *testing.T) {
	ctx := context.Background()
	c, err := catalog.Default()
	require.NoError(t, err)
	v := forms.NewDirectoryView(c.Doctors(), c.Departments())

	assert.Len(t, v.Results(), 6)

	require.NoError(t, v.Dispatch(ctx, forms.QueryChanged{Query: "Brown"}))
	assert.Equal(t, []string{"d1"}, doctorIDs(v.Results()))

	require.NoError(t, v.Dispatch(ctx, forms.DepartmentFilterChanged{DepartmentID: "neurology"}))
	assert.Empty(t, v.Results())

	require.NoError(t, v.Dispatch(ctx, forms.QueryChanged{Query: ""}))
	assert.Equal(t, []string{"d2"}, doctorIDs(v.Results()))

	require.NoError(t, v.Dispatch(ctx, forms.Reset{}))
	assert.Empty(t, v.Query())
	assert.Empty(t, v.DepartmentID())
	assert.Len(t, v.Results(), 6)

	assert.Error(t, v.Dispatch(ctx, forms.Submitted{}))
}

func TestDirectoryView_DepartmentName(t *testing.T) {
	v := forms.NewDirectoryView(
		[]entities.Doctor{{ID: "x", Name: "Dr. X", DepartmentID: "gone"}},
		[]entities.Department{{ID: "cardiology", Name: "Cardiology"}},
	)

	assert.Equal(t, "Cardiology", v.DepartmentName("cardiology"))
	assert.Equal(t, "—", v.DepartmentName("gone"))
}
