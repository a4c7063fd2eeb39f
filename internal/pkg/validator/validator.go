package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"carrental/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// notblank rejects whitespace-only strings, which required lets through.
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Validate struct fields, keyed by json field name.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fe.Tag()
	}
	return errs
}

// Var validates a single value against a tag list, e.g. Var(email, "required,email").
func Var(v interface{}, tag string) bool {
	return validate.Var(v, tag) == nil
}

// Check validates v and folds any failures into a single validation error
// naming the offending fields in a stable order.
func Check(v interface{}) error {
	errs := Validate(v)
	if len(errs) == 0 {
		return nil
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, errs[f]))
	}
	return apperr.Validation("VALIDATION_ERROR", "invalid fields: "+strings.Join(parts, ", ")).WithDetails(errs)
}
