package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"littlelemon/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldErrors converts validator failures into a field → message map.
func fieldErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Validation(err.Error())
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return apperrors.InvalidFields(fields)
}
