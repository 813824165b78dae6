package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	platePattern       = regexp.MustCompile(`^[A-Z0-9-]{2,15}$`)
	parkingCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{1,32}$`)

	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the "plate" and "parkingcode" binding tags on gin's validator
// and makes validation errors name fields by their JSON keys. It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("plate", validatePlate); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("parkingcode", validateParkingCode)
	})
	return registerErr
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validatePlate(fl validator.FieldLevel) bool {
	return platePattern.MatchString(domain.NormalizePlate(fl.Field().String()))
}

func validateParkingCode(fl validator.FieldLevel) bool {
	return parkingCodePattern.MatchString(domain.NormalizeParkingCode(fl.Field().String()))
}

// bindErrorMessage turns a binding failure into a client-facing message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "plate":
		return fe.Field() + " must be 2 to 15 letters, digits or dashes"
	case "parkingcode":
		return fe.Field() + " must be 1 to 32 letters, digits, dashes or underscores"
	default:
		return fe.Field() + " is invalid"
	}
}
