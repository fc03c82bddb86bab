package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// decimalPattern accepts an optional sign, an optional integer part and a
// fraction: "12", "-3.5", ".5" and "+.5" pass, "5." and "1e3" do not.
var decimalPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		return decimalPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// NotEmpty passes for any present value whose string form is non-empty.
func NotEmpty(value interface{}, present bool) bool {
	if !present {
		return false
	}
	return validate.Var(Stringify(value), "required") == nil
}

// IsNumeric passes for JSON numbers and strings such as "12", "-3.5", ".5".
func IsNumeric(value interface{}, _ bool) bool {
	return validate.Var(Stringify(value), "required,decimal") == nil
}

// IsInt passes for integral JSON numbers and strings such as "42", "-7".
func IsInt(value interface{}, _ bool) bool {
	return validate.Var(Stringify(value), "required,numeric,excludes=.") == nil
}

// IsBoolean passes for JSON booleans and strings accepted by strconv.ParseBool.
func IsBoolean(value interface{}, _ bool) bool {
	if _, ok := value.(bool); ok {
		return true
	}
	return validate.Var(Stringify(value), "required,boolean") == nil
}

// GreaterThan builds a predicate passing for values strictly above min once
// loosely converted to a number, so true counts as 1 and false as 0.
func GreaterThan(min float64) Predicate {
	tag := "gt=" + strconv.FormatFloat(min, 'f', -1, 64)
	return func(value interface{}, _ bool) bool {
		f, ok := looseNumber(value)
		if !ok {
			return false
		}
		return validate.Var(f, tag) == nil
	}
}

// MaxLength builds a predicate passing for values of at most max characters.
// Absent and empty values pass.
func MaxLength(max int) Predicate {
	tag := "omitempty,max=" + strconv.Itoa(max)
	return func(value interface{}, _ bool) bool {
		return validate.Var(Stringify(value), tag) == nil
	}
}

// Stringify renders a decoded JSON value the way it would appear in a form
// field. Absent and null values become the empty string.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// Float converts a numeric JSON value or numeric string.
func Float(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func looseNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, true
		}
	}
	return Float(value)
}

// Bool converts a JSON boolean or boolean string.
func Bool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	case float64:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	}
	return false, false
}
