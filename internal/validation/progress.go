package validation

import (
	"strings"
	"time"
)

// ProgressInput is the body of progress create (POST) and update (PATCH).
// Nil fields are absent from the payload.
type ProgressInput struct {
	Date         *string            `json:"date" validate:"omitnil,isodate,notfuture"`
	PhotoURL     *string            `json:"photoUrl" validate:"omitnil,url"`
	Weight       *float64           `json:"weight" validate:"omitnil,gte=30,lte=200"`
	Notes        *string            `json:"notes" validate:"omitnil,max=200"`
	Measurements *MeasurementsInput `json:"-"`
}

var progressFields = FieldsOf(ProgressInput{}, "measurements")

// ParsedDate returns the entry date; ok is false when no date was sent.
func (in *ProgressInput) ParsedDate() (t time.Time, ok bool) {
	if in.Date == nil {
		return time.Time{}, false
	}
	t, err := ParseDate(*in.Date)
	return t, err == nil
}

// Progress validates a progress payload. When partial is false (create) the
// date is required.
func (v *Validator) Progress(body []byte, partial bool) (*ProgressInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(progressFields, "progress"); err != nil {
		return nil, err
	}
	if !partial && (!p.Has("date") || strings.TrimSpace(p.Get("date").String()) == "") {
		return nil, newError("date", "date is required")
	}
	var in ProgressInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		in.Notes = &notes
	}
	if err := v.check(&in); err != nil {
		return nil, err
	}
	if in.Measurements, err = v.measurements(p.Get("measurements"), "measurements"); err != nil {
		return nil, err
	}
	return &in, nil
}
