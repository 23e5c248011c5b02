package employee

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToEntity(t *testing.T) {
	req := CreateEmployeeRequest{
		Email:    "a@x.com",
		FullName: "John Doe",
		Birthday: "1990-01-01",
		Hobbies:  []string{"Reading", "Hiking"},
	}

	empl, err := toEntity(req)

	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, empl.ID, "id assignment belongs to the store")
	assert.Equal(t, req.Email, empl.Email)
	assert.Equal(t, req.FullName, empl.FullName)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), empl.Birthday)
	assert.Equal(t, req.Hobbies, []string(empl.Hobbies))
}

func TestToEntityRejectsMalformedBirthday(t *testing.T) {
	req := CreateEmployeeRequest{
		Email:    "a@x.com",
		FullName: "John Doe",
		Birthday: "01.01.1990",
	}

	_, err := toEntity(req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestMapToResponse(t *testing.T) {
	empl := Employee{
		ID:       uuid.New(),
		Email:    "a@x.com",
		FullName: "John Doe",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Hobbies:  []string{"Reading"},
	}

	resp := mapToResponse(empl)

	assert.Equal(t, empl.ID.String(), resp.ID)
	assert.Equal(t, empl.Email, resp.Email)
	assert.Equal(t, "1990-01-01", resp.Birthday)
	assert.Equal(t, []string{"Reading"}, resp.Hobbies)
}

func TestMapToListResponse(t *testing.T) {
	empls := []Employee{
		{ID: uuid.New(), Email: "a@x.com", FullName: "A", Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Email: "b@x.com", FullName: "B", Birthday: time.Date(1991, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	resp := mapToListResponse(empls)

	assert.Len(t, resp, 2)
	assert.Equal(t, empls[0].ID.String(), resp[0].ID)
	assert.Equal(t, empls[1].Email, resp[1].Email)
}

func TestToSnapshot(t *testing.T) {
	empl := Employee{
		ID:       uuid.New(),
		Email:    "a@x.com",
		FullName: "John Doe",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Hobbies:  []string{"Reading", "Hiking"},
	}

	snap := toSnapshot(empl)

	assert.Equal(t, empl.ID.String(), snap.ID)
	assert.Equal(t, empl.Email, snap.Email)
	assert.Equal(t, empl.FullName, snap.FullName)
	assert.Equal(t, "1990-01-01", snap.Birthday)
	assert.Equal(t, []string(empl.Hobbies), snap.Hobbies)
}
