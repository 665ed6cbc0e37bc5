package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input value. Loc is the location of the
// value, e.g. ["body", "amount"] or ["query", "limit"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

const (
	errTypeMissing = "missing"
	errTypeType    = "type_error"
	errTypeMin     = "greater_than_equal"
)

var registerFieldNames sync.Once

// useJSONFieldNames makes validator report json names instead of Go field
// names.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// abortWithBindError answers a failed ShouldBindJSON. Well-formed JSON with
// missing or mistyped fields gets 422 and a per-field list; anything that is
// not a JSON object gets 400.
func abortWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldErrorFrom("body", fe))
		}
		abortWithFieldErrors(c, details...)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		abortWithFieldErrors(c, FieldError{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s, got %s", kindName(typeErr.Type), typeErr.Value),
			Type: errTypeType,
		})
		return
	}

	c.Error(err).SetType(gin.ErrorTypeBind)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
}

func abortWithFieldErrors(c *gin.Context, details ...FieldError) {
	c.Error(fmt.Errorf("validation failed: %v", details)).SetType(gin.ErrorTypeBind)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

func abortWithStorageError(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

func fieldErrorFrom(source string, fe validator.FieldError) FieldError {
	if fe.Tag() == "required" {
		return FieldError{Loc: []string{source, fe.Field()}, Msg: "Field required", Type: errTypeMissing}
	}
	return FieldError{Loc: []string{source, fe.Field()}, Msg: fe.Error(), Type: fe.Tag()}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
