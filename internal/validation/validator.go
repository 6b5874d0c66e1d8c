package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|gif)$`)
	httpURLPattern  = regexp.MustCompile(`^https?://.+`)
)

// Options configures a Validator. Zero values select the defaults.
type Options struct {
	// PasswordPolicy decides whether a password is strong enough. Defaults to StrongPassword.
	PasswordPolicy func(string) bool
	// Now is the clock used for "not in the future" checks. Defaults to time.Now.
	Now func() time.Time
}

// Validator checks request payloads before anything touches the database.
// It is safe for concurrent use.
type Validator struct {
	validate       *validator.Validate
	passwordPolicy func(string) bool
	now            func() time.Time
}

// New creates a Validator with the custom rules registered.
func New(opts Options) *Validator {
	v := &Validator{
		validate:       validator.New(),
		passwordPolicy: opts.PasswordPolicy,
		now:            opts.Now,
	}
	if v.passwordPolicy == nil {
		v.passwordPolicy = StrongPassword
	}
	if v.now == nil {
		v.now = time.Now
	}

	// Report fields by their JSON names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v.validate, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v.validate, "imageurl", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "httpurl", func(fl validator.FieldLevel) bool {
		return httpURLPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v.validate, "strongpassword", func(fl validator.FieldLevel) bool {
		return v.passwordPolicy(fl.Field().String())
	})
	mustRegister(v.validate, "isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v.validate, "notfuture", func(fl validator.FieldLevel) bool {
		t, err := ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return !t.After(v.now())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// Now returns the validator's clock reading.
func (v *Validator) Now() time.Time {
	return v.now()
}

// PasswordAllowed applies the configured password policy.
func (v *Validator) PasswordAllowed(password string) bool {
	return v.passwordPolicy(password)
}

// check runs the struct tags of input and converts the first failure into an Error.
func (v *Validator) check(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fieldPath(fe)
		return &Error{Field: field, Message: describe(field, fe)}
	}
	return newError("", "Invalid payload: %v", err)
}

// fieldPath strips the root struct name from the error namespace,
// e.g. "DailyPlanInput.meals.breakfast[0].title" -> "meals.breakfast[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(field string, fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required", "notblank":
		if isList {
			return field + " must contain at least one item"
		}
		return field + " is required"
	case "min":
		switch {
		case isText:
			return field + " must be at least " + fe.Param() + " characters"
		case isList:
			return field + " must contain at least " + fe.Param() + " item(s)"
		}
		return field + " must be greater than or equal to " + fe.Param()
	case "max":
		switch {
		case isText:
			return field + " cannot exceed " + fe.Param() + " characters"
		case isList:
			return field + " cannot contain more than " + fe.Param() + " items"
		}
		return field + " must be less than or equal to " + fe.Param()
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	case "url", "httpurl":
		return field + " must be a valid URL"
	case "imageurl":
		return field + " must be a valid image URL (jpg, jpeg, png, webp or gif)"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "strongpassword":
		return field + " is not strong enough"
	case "isodate":
		return field + " must be a valid date"
	case "notfuture":
		return field + " cannot be in the future"
	case "objectid":
		return field + " must be a valid id"
	}
	return field + " is invalid"
}
