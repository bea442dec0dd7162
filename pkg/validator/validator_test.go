package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type searchQuery struct {
	Query string `json:"q" validate:"required,max=10"`
}

type videoId struct {
	Id string `json:"id" validate:"len=11"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	_, ok := v.Validate(searchQuery{Query: "lofi"})
	assert.True(t, ok)

	errs, ok := v.Validate(searchQuery{})
	assert.False(t, ok)
	assert.Equal(t, []ValidationError{{Field: "q", Code: CodeRequired, Message: "q is required"}}, errs)

	errs, ok = v.Validate(searchQuery{Query: "this is far too long"})
	assert.False(t, ok)
	assert.Equal(t, CodeTooLong, errs[0].Code)

	errs, ok = v.Validate(videoId{Id: "short"})
	assert.False(t, ok)
	assert.Equal(t, []ValidationError{{Field: "id", Code: CodeWrongLength, Message: "id must be exactly 11 characters long"}}, errs)
}

func TestValidateNonStruct(t *testing.T) {
	errs, ok := NewValidator().Validate("not a struct")
	assert.False(t, ok)
	assert.Equal(t, CodeInvalid, errs[0].Code)
}
