package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `form:"name" binding:"required,min=2"`
	Price int64  `json:"price" binding:"omitempty,gt=0"`
}

func TestToDetailsUsesTagNames(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(samplePayload{Email: "not-an-email", Price: -5})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "is required", details["name"], "form tag should name the field when json tag is absent")
	assert.Equal(t, "must be greater than 0", details["price"])
}

func TestToDetailsMalformedJSON(t *testing.T) {
	var dst samplePayload
	err := json.Unmarshal([]byte("{"), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
