package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SchlottiP/employee-test/internal/employee"
	employeeerrors "github.com/SchlottiP/employee-test/internal/employee/errors"
	"github.com/SchlottiP/employee-test/internal/shared/apperror"
	"github.com/SchlottiP/employee-test/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func decodeEnvelope(t *testing.T, body string) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	assert.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success returns 200 with the created employee", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{
					ID:       uuid.New().String(),
					Email:    req.Email,
					FullName: req.FullName,
					Birthday: req.Birthday,
					Hobbies:  req.Hobbies,
				}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"a@x.com","full_name":"John Doe","birthday":"1990-01-01","hobbies":["Reading","Hiking"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
		assert.Contains(t, w.Body.String(), `"id"`)
	})

	t.Run("structural validation failure returns 400 with a field map", func(t *testing.T) {
		svc := &fakeEmployeeService{} // must not be reached
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"not-an-email","full_name":"","birthday":"1990-01-01","hobbies":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		env := decodeEnvelope(t, w.Body.String())
		assert.False(t, env.Ok)
		errObj := env.Error.(map[string]interface{})
		assert.Equal(t, apperror.CodeInvalidInput, errObj["code"])
		details := errObj["details"].(map[string]interface{})
		assert.Contains(t, details, "email")
	})

	t.Run("duplicate email returns 409 with the generic message only", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyUsed.WithInternal(
					assert.AnError,
				)
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"a@x.com","full_name":"John Doe","birthday":"1990-01-01","hobbies":["Reading"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "E-Mail Address is already in use.")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("unexpected service failure is a generic 500", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, assert.AnError
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"a@x.com","full_name":"John Doe","birthday":"1990-01-01","hobbies":["Reading"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "An unexpected error occurred")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	listing := []employee.EmployeeResponse{
		{ID: uuid.New().String(), Email: "b@x.com", FullName: "Bob", Birthday: "1991-01-01", Hobbies: []string{"Chess"}},
		{ID: uuid.New().String(), Email: "a@x.com", FullName: "Alice", Birthday: "1990-01-01", Hobbies: []string{"Hiking"}},
	}

	t.Run("returns the listing sorted by name with pagination meta", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return listing, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w.Body.String())
		data := env.Data.([]interface{})
		assert.Len(t, data, 2)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Alice", first["full_name"])
		assert.NotNil(t, env.Meta)
	})

	t.Run("q filters by name or email", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return listing, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/employees?q=alice", nil)

		h.GetAll(c)

		env := decodeEnvelope(t, w.Body.String())
		data := env.Data.([]interface{})
		assert.Len(t, data, 1)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, gotID string) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, gotID)
				return employee.EmployeeResponse{ID: id, Email: "a@x.com", FullName: "John Doe"}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("absent -> 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("partial payload reaches the service as set fields only", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, gotID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, gotID)
				assert.NotNil(t, req.Email)
				assert.Equal(t, "b@x.com", *req.Email)
				assert.Nil(t, req.FullName)
				assert.Nil(t, req.Birthday)
				assert.Nil(t, req.Hobbies)
				return employee.EmployeeResponse{ID: id, Email: *req.Email, FullName: "John Doe"}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"b@x.com"}`
		req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "b@x.com")
	})

	t.Run("invalid email in payload -> 400", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		id := uuid.New().String()
		body := `{"email":"not-an-email"}`
		req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("always 204 with empty body", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, gotID string) error {
				assert.Equal(t, id, gotID)
				return nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/api/employees/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
