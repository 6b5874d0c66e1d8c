package validation

import (
	"errors"
	"strconv"
	"strings"

	"alcyxob/wellness-app/internal/domain"

	"github.com/tidwall/gjson"
)

// MeasurementsInput carries the six body measurements in cm. Nil means "not provided".
type MeasurementsInput struct {
	Chest *float64 `json:"chest" validate:"omitnil,gte=40,lte=200"`
	Waist *float64 `json:"waist" validate:"omitnil,gte=30,lte=200"`
	Hip   *float64 `json:"hip" validate:"omitnil,gte=40,lte=200"`
	Thigh *float64 `json:"thigh" validate:"omitnil,gte=20,lte=150"`
	Arm   *float64 `json:"arm" validate:"omitnil,gte=10,lte=100"`
	Neck  *float64 `json:"neck" validate:"omitnil,gte=10,lte=100"`
}

// MeasurementFields is the declared set of measurement keys.
var MeasurementFields = FieldsOf(MeasurementsInput{})

// ToDomain converts the input into the stored representation.
func (m *MeasurementsInput) ToDomain() domain.Measurements {
	if m == nil {
		return domain.Measurements{}
	}
	return domain.Measurements{
		Chest: m.Chest,
		Waist: m.Waist,
		Hip:   m.Hip,
		Thigh: m.Thigh,
		Arm:   m.Arm,
		Neck:  m.Neck,
	}
}

// measurements reads a nested measurements object. Keys are restricted to the
// six known fields; values may be numbers, numeric strings, empty strings or null.
// Empty values count as absent.
func (v *Validator) measurements(res gjson.Result, field string) (*MeasurementsInput, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	if !res.IsObject() {
		return nil, newError(field, "%s must be an object", field)
	}
	if err := onlyKeys(res, MeasurementFields, "measurements", field+"."); err != nil {
		return nil, err
	}

	values := map[string]*float64{}
	var parseErr error
	res.ForEach(func(key, value gjson.Result) bool {
		name := field + "." + key.String()
		switch value.Type {
		case gjson.Null:
			return true
		case gjson.Number:
			f := value.Float()
			values[key.String()] = &f
		case gjson.String:
			s := strings.TrimSpace(value.String())
			if s == "" {
				return true
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				parseErr = newError(name, "%s must be a number", name)
				return false
			}
			values[key.String()] = &f
		default:
			parseErr = newError(name, "%s must be a number", name)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	in := &MeasurementsInput{
		Chest: values["chest"],
		Waist: values["waist"],
		Hip:   values["hip"],
		Thigh: values["thigh"],
		Arm:   values["arm"],
		Neck:  values["neck"],
	}
	if err := v.check(in); err != nil {
		var vErr *Error
		if errors.As(err, &vErr) {
			vErr.Field = field + "." + vErr.Field
			vErr.Message = field + "." + vErr.Message
		}
		return nil, err
	}
	return in, nil
}
