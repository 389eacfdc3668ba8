// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

/*
TestValidator_AllPass verifies that a fully valid chain returns nil.
*/
func TestValidator_AllPass(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "Hello, World!").
		MaxLen("title", "Hello, World!", 200).
		Slug("slug", "hello-world").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_CollectsAllFailures verifies that every failed rule is
reported, not just the first.
*/
func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "   ").
		Required("content", "").
		Err()

	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)
	assert.Equal(t, "title", appError.Details[0].Field)
	assert.Equal(t, "content", appError.Details[1].Field)
}

/*
TestValidator_Slug verifies the slug format rule against well-formed
and malformed inputs.
*/
func TestValidator_Slug(t *testing.T) {
	valid := []string{"hello-world", "a", "100-pure-go", "x1-y2-z3"}
	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "UPPER", "with space", "uni-codé"}

	for _, s := range valid {
		v := &validate.Validator{}
		assert.NoError(t, v.Slug("slug", s).Err(), "slug: %q", s)
	}

	for _, s := range invalid {
		v := &validate.Validator{}
		assert.Error(t, v.Slug("slug", s).Err(), "slug: %q", s)
	}
}

/*
TestValidator_Custom verifies that conditional failures are attributed
to the named field.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}

	err := v.Custom("title", true, "Must contain at least one letter or digit").Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "title", appError.Details[0].Field)
}

/*
TestRequiredError verifies the single-field error shortcut.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("content", "is required")

	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "content", err.Details[0].Field)
}
