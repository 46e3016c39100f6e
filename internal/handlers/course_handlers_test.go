package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/service"
)

func (env *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, fileField string, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "image.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "author@example.com", "course_author", "Password1", 0)
	token := env.signIn(t, "author@example.com", "Password1")

	fields := map[string]string{
		"course_title": "Intro to Go",
		"description":  "from zero",
		"price":        "49.99",
	}

	// unauthenticated
	rec := env.doMultipart(t, http.MethodPost, "/courses/create", fields, "imageUrl", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// missing image file
	rec = env.doMultipart(t, http.MethodPost, "/courses/create", fields, "", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "image file is required")

	rec = env.doMultipart(t, http.MethodPost, "/courses/create", fields, "imageUrl", token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var course models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	require.Equal(t, "Intro to Go", course.CourseTitle)
	require.Equal(t, 49.99, course.Price)
	require.Contains(t, course.ImageURL, "/uploads/")
	require.NotZero(t, course.UserID)
}

func TestListCourses(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "author@example.com", "course_author", "Password1", 0)

	var owner models.User
	require.NoError(t, env.DB.Where("username = ?", "course_author").First(&owner).Error)
	for i := 1; i <= 12; i++ {
		course := models.Course{CourseTitle: fmt.Sprintf("course %d", i), UserID: owner.ID, Description: "d", Price: float64(i)}
		require.NoError(t, env.DB.Create(&course).Error)
	}

	rec := env.doJSON(t, http.MethodGet, "/courses?page=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page service.CoursePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.EqualValues(t, 12, page.TotalCount)
	require.Len(t, page.Courses, 9)
	require.Equal(t, "course 12", page.Courses[0].CourseTitle)

	rec = env.doJSON(t, http.MethodGet, "/courses/low-to-high?page=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, float64(1), page.Courses[0].Price)

	rec = env.doJSON(t, http.MethodGet, "/courses/high-to-low?page=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, float64(12), page.Courses[0].Price)
}

func TestEditAndDeleteCourse(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "author@example.com", "course_author", "Password1", 0)
	token := env.signIn(t, "author@example.com", "Password1")

	var owner models.User
	require.NoError(t, env.DB.Where("username = ?", "course_author").First(&owner).Error)
	course := models.Course{CourseTitle: "before", UserID: owner.ID, Description: "d", Price: 10}
	require.NoError(t, env.DB.Create(&course).Error)

	rec := env.doJSON(t, http.MethodPatch, fmt.Sprintf("/courses/edit/%d", course.ID), map[string]interface{}{
		"course_title": "after",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var edited models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	require.Equal(t, "after", edited.CourseTitle)
	require.Equal(t, "d", edited.Description)

	rec = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/courses/delete/%d", course.ID), nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(t, http.MethodGet, fmt.Sprintf("/courses/%d", course.ID), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/courses/delete/%d", course.ID), nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
