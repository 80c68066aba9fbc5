package validator

import (
	"fmt"
	"reflect"
	"strings"
	"vidly/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

// New returns a validator with the project's custom validators registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sortfield", ValidateSortField); err != nil {
		panic(err)
	}
	return v
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	t := indirectType(reflect.TypeOf(obj))
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			return jsonName
		}
	}
	return utils.CamelToSnake(origFieldName)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := indirectType(reflect.TypeOf(obj))
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		isString := field.Type.Kind() == reflect.String
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			if isString {
				errorMsg = fmt.Sprintf("The maximum length is %s", err.Param())
			} else {
				errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
			}
		case "min":
			if isString {
				errorMsg = fmt.Sprintf("The minimum length is %s", err.Param())
			} else {
				errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
			}
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "lt":
			errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "len":
			errorMsg = fmt.Sprintf("Length should be equal to %s", err.Param())
		case "email":
			errorMsg = "Value must be a valid email address"
		case "sortfield":
			errorMsg = "Value must be a name of one of the sortable fields (e.g. title, -daily_rental_rate)"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// CUSTOM VALIDATORS

// ValidateSortField checks that the field (optionally prefixed with "-")
// is listed in the sibling SortSafelist field.
func ValidateSortField(fl govalidator.FieldLevel) bool {
	sort := strings.TrimPrefix(fl.Field().String(), "-")
	parent := fl.Parent()
	for parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	safelist := parent.FieldByName("SortSafelist")
	if !safelist.IsValid() || safelist.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < safelist.Len(); i++ {
		if strings.EqualFold(sort, safelist.Index(i).String()) {
			return true
		}
	}
	return false
}
