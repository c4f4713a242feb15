package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"sune-tv/internal/api/response"
	"sune-tv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidatorTagNames makes binding errors name fields the way the
// client sent them (json or form tag) instead of the Go field name.
func RegisterValidatorTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindError renders a failed ShouldBind* call.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		response.ValidationFailed(c, fe.Field(), fieldErrorMessage(fe))
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		response.ValidationFailed(c, typeErr.Field,
			fmt.Sprintf("Incorrect type. Expected %s, received %s.", typeErr.Type, typeErr.Value))
		return
	}

	response.BadRequest(c, "Malformed request: "+err.Error())
}

func fieldErrorMessage(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if isList {
			return fmt.Sprintf("Ensure this list has no more than %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if isList {
			return fmt.Sprintf("Ensure this list has at least %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf(`"%v" is not a valid choice.`, fe.Value())
	default:
		return "Invalid value."
	}
}

// validationFailed writes err when it is a field-level validation error.
func validationFailed(c *gin.Context, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, verr.Field, verr.Message)
		return true
	}
	return false
}

// parseID reads a positive integer path parameter. A malformed id names no
// existing row, so callers answer 404.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
