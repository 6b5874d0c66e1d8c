package validation

import (
	"strings"
)

// SignupInput is the body of POST /signup.
type SignupInput struct {
	Name         string             `json:"name" validate:"required,min=3,max=50"`
	EmailID      string             `json:"emailId" validate:"required,email"`
	Password     string             `json:"password" validate:"required,strongpassword"`
	DOB          string             `json:"dob" validate:"required,isodate,notfuture"`
	PhotoURL     string             `json:"photoUrl" validate:"omitempty,url"`
	Height       *float64           `json:"height" validate:"omitnil,gte=100,lte=250"`
	Weight       *float64           `json:"weight" validate:"omitnil,gte=30,lte=200"`
	Measurements *MeasurementsInput `json:"-"`
}

// Signup validates a registration payload.
func (v *Validator) Signup(body []byte) (*SignupInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	var in SignupInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.EmailID = normalizeEmail(in.EmailID)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	if in.Measurements, err = v.measurements(p.Get("measurements"), "measurements"); err != nil {
		return nil, err
	}
	return &in, nil
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	EmailID  string `json:"emailId" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login validates a login payload.
func (v *Validator) Login(body []byte) (*LoginInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	var in LoginInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.EmailID = normalizeEmail(in.EmailID)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ProfileEditInput is the body of PATCH /profile/edit. Nil fields are left unchanged.
type ProfileEditInput struct {
	Name     *string  `json:"name" validate:"omitnil,min=3,max=50"`
	EmailID  *string  `json:"emailId" validate:"omitnil,email"`
	DOB      *string  `json:"dob" validate:"omitnil,isodate,notfuture"`
	PhotoURL *string  `json:"photoUrl" validate:"omitnil,url"`
	Height   *float64 `json:"height" validate:"omitnil,gte=100,lte=250"`

	// Moved to progress snapshots.
	Weight       *float64           `json:"weight" validate:"omitnil,gte=30,lte=200"`
	Measurements *MeasurementsInput `json:"-"`
}

var profileEditFields = FieldsOf(ProfileEditInput{}, "measurements")

// HasStableUpdates reports whether any user-document field is being changed.
func (in *ProfileEditInput) HasStableUpdates() bool {
	return in.Name != nil || in.EmailID != nil || in.DOB != nil || in.PhotoURL != nil || in.Height != nil
}

// HasProgressUpdates reports whether the edit carries a weight or at least
// one measurement value.
func (in *ProfileEditInput) HasProgressUpdates() bool {
	return in.Weight != nil || (in.Measurements != nil && !in.Measurements.ToDomain().IsEmpty())
}

// ProfileEdit validates a profile edit payload.
func (v *Validator) ProfileEdit(body []byte) (*ProfileEditInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(profileEditFields, "profile"); err != nil {
		return nil, err
	}
	var in ProfileEditInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.EmailID != nil {
		email := normalizeEmail(*in.EmailID)
		in.EmailID = &email
	}
	if err := v.check(&in); err != nil {
		return nil, err
	}
	if in.Measurements, err = v.measurements(p.Get("measurements"), "measurements"); err != nil {
		return nil, err
	}
	return &in, nil
}

// PasswordChangeInput is the body of PATCH /profile/password.
type PasswordChangeInput struct {
	ExistingPassword string `json:"existingPassword" validate:"required"`
	NewPassword      string `json:"newPassword" validate:"required,strongpassword"`
}

var passwordChangeFields = FieldsOf(PasswordChangeInput{})

// PasswordChange validates a password change payload.
func (v *Validator) PasswordChange(body []byte) (*PasswordChangeInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(passwordChangeFields, "password"); err != nil {
		return nil, err
	}
	var in PasswordChangeInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
