package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

func TestValidateLinkDraft(t *testing.T) {
	v := New()

	t.Run("valid draft passes", func(t *testing.T) {
		err := v.Validate(types.LinkDraft{Title: "My Site", URL: "https://example.com"})
		assert.NoError(t, err)
	})

	t.Run("missing title reported by json name", func(t *testing.T) {
		err := v.Validate(types.LinkDraft{URL: "https://example.com"})
		require.Error(t, err)

		var fieldErrs *FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Fields, "title")
		assert.Equal(t, "is required", fieldErrs.Fields["title"])
	})

	t.Run("missing url reported", func(t *testing.T) {
		err := v.Validate(types.LinkDraft{Title: "My Site"})
		var fieldErrs *FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Fields, "url")
	})
}

func TestValidateLoginForm(t *testing.T) {
	v := New()

	err := v.Validate(types.LoginForm{Email: "not-an-email", Password: "x"})
	var fieldErrs *FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "must be a valid email address", fieldErrs.Fields["email"])
}

func TestFieldErrorsMessageIsStable(t *testing.T) {
	errs := &FieldErrors{Fields: map[string]string{
		"url":   "is required",
		"title": "is required",
	}}
	assert.Equal(t, "title is required; url is required", errs.Error())
}
