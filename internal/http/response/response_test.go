package response

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestOK(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := OK(http.StatusOK, "Profile", data)

	assert.Equal(t, http.StatusOK, resp.Response.Status)
	assert.Equal(t, "Profile", resp.Message)
	assert.Equal(t, data, resp.Data)
	assert.Empty(t, resp.Errors)
	assert.Empty(t, resp.Token)
}

func TestOKWithToken(t *testing.T) {
	resp := OKWithToken(http.StatusOK, "Login was successful.", "signed.jwt.token")

	assert.Equal(t, http.StatusOK, resp.Response.Status)
	assert.Equal(t, "Login was successful.", resp.Message)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Nil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error(http.StatusConflict, "user already exists")

	assert.Equal(t, http.StatusConflict, resp.Response.Status)
	assert.Equal(t, "Error.", resp.Message)
	assert.Equal(t, "user already exists", resp.Errors)
	assert.Nil(t, resp.Data)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Username string `validate:"required,min=3"`
		Email    string `validate:"email"`
	}

	v := validator.New()
	ts := TestStruct{
		Username: "ab",
		Email:    "not-an-email",
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(http.StatusBadRequest, validationErrors)

	assert.Equal(t, http.StatusBadRequest, resp.Response.Status)
	assert.Equal(t, "Error.", resp.Message)
	assert.Contains(t, resp.Errors, "field Username is too short")
	assert.Contains(t, resp.Errors, "field Email is not a valid email")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Password string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(TestStruct{})
	assert.Error(t, err)

	resp := ValidationError(http.StatusBadRequest, err.(validator.ValidationErrors))
	assert.Contains(t, resp.Errors, "field Password is a required field")
}
