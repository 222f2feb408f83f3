package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as a number so min=0 and gt=0 work on money fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report failures under the name the client sent.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
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
}

// bindAndValidate binds the JSON body and runs validator tags. On failure the
// error is pushed to the context and false is returned; the caller returns.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(apierror.BadRequest("invalid JSON body"))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		_ = c.Error(apierror.BadRequest("invalid query parameters"))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req any) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		_ = c.Error(apierror.BadRequest(err.Error()))
		return false
	}
	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierror.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	_ = c.Error(apierror.Validation(fields))
	return false
}

// fieldPath drops the root struct name from the namespace: "Req.a.b" → "a.b".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "uuid":
		return name + " must be a valid id"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
}

// paramID parses a UUID path parameter.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(apierror.BadRequest("invalid " + name))
		return uuid.Nil, false
	}
	return id, true
}

// actorID is the id of the authenticated user. Routes using it sit behind JWTAuth.
func actorID(c *gin.Context) uuid.UUID {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}

func sendOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apierror.OK(data))
}

func sendCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apierror.OK(data))
}

// attachment writes a binary download.
func attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
