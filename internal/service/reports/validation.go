package reports

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("sort_field", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseSortField(fl.Field().String())
		return err == nil
	})
}

// validateStruct runs the struct's validate tags and folds failures into
// domain.ErrInvalidArgument.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "sort_field":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a sortable field", fe.Field(), fe.Value()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(msgs, "; "))
}
