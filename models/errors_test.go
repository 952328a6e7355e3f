package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{}
	assert.False(t, errs.Any())

	errs.Add("title", "can't be blank")
	errs.Add("category", "is not included in the list")
	errs.Add("title", "is too long")

	assert.True(t, errs.Any())
	assert.Equal(t, []string{"can't be blank", "is too long"}, errs["title"])
	assert.Equal(t, "category is not included in the list; title can't be blank, is too long", errs.Error())
}
