package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях — имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON читает тело и проверяет теги validate. Ошибка уже содержит текст для клиента.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		var de *dateError
		if errors.As(err, &de) {
			return de
		}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return fmt.Errorf("invalid type for field %s", te.Field)
		}
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationMessage(err)
	}
	return nil
}

func validationMessage(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errors.New("invalid request body")
	}
	fe := ve[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		return fmt.Errorf("%s must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must have at most %s characters", field, fe.Param())
	case "email":
		return fmt.Errorf("%s must be a valid email", field)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Errorf("%s is invalid", field)
}

// flexTime принимает RFC 3339 или дату YYYY-MM-DD (полночь UTC).
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = ts
		return nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return &dateError{value: s}
	}
	t.Time = ts
	return nil
}

type dateError struct {
	value string
}

func (e *dateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD or RFC 3339", e.value)
}
