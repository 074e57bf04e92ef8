package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"job_portal/internal/middleware"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerValidatorsOnce sync.Once

// registerFormValidators adds the notblank rule and makes validation errors
// report form field names (cover_letter) instead of struct field names
// (CoverLetter).
func registerFormValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank validation: %v", err))
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// formErrors maps a binding error to field-level messages
func formErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "Invalid form submission."}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", strings.ToLower(fe.Param()))
	case "oneof":
		return "Not a valid choice."
	default:
		return "Invalid value."
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// safeNext only accepts local paths as login return targets
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/"
}

func renderError(c *gin.Context, r view.Renderer, status int, message string) {
	r.Render(c, status, "errors/"+strconv.Itoa(status), gin.H{"error": message})
	c.Abort()
}

func renderNotFound(c *gin.Context, r view.Renderer, message string) {
	renderError(c, r, http.StatusNotFound, message)
}

// renderInternal logs err with the request logger and hides it from the client
func renderInternal(c *gin.Context, r view.Renderer, msg string, err error) {
	middleware.Logger(c).Error(msg, "error", err)
	renderError(c, r, http.StatusInternalServerError, "Something went wrong")
}
