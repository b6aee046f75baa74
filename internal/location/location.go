// Package location persists the visitor's delivery location.
package location

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/storefront-backend/internal/delivery"
	"github.com/angelmondragon/storefront-backend/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// StoreName is the blob key of the location.
const StoreName = "location"

// Profile is where the visitor wants deliveries to go.
type Profile struct {
	Label   string `json:"label" validate:"required,max=64"`
	Pincode string `json:"pincode" validate:"required,pincode"`
	Address string `json:"address,omitempty" validate:"omitempty,max=256"`
}

// State holds the profile, or nil when none is set.
type State struct {
	Profile *Profile `json:"profile"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return delivery.ValidPincode(fl.Field().String())
	})
	return v
}

// Validate checks the profile and reports field problems as details.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	details := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location").WithDetails(details)
}

func normalize(p Profile) Profile {
	p.Label = strings.TrimSpace(p.Label)
	p.Pincode = strings.TrimSpace(p.Pincode)
	p.Address = strings.TrimSpace(p.Address)
	return p
}

// Set replaces the profile after validating it.
func (s State) Set(p Profile) (State, error) {
	p = normalize(p)
	if err := p.Validate(); err != nil {
		return s, err
	}
	return State{Profile: &p}, nil
}

func (s State) Clear() State {
	return State{}
}

// Sanitize drops a persisted profile that no longer validates.
func Sanitize(s State) State {
	if s.Profile == nil || s.Profile.Validate() != nil {
		return State{}
	}
	return s
}

// Store is the persisted location of one visitor.
type Store struct {
	c *persist.Container[State]
}

func Open(ctx context.Context, deps persist.Deps) *Store {
	return &Store{c: persist.Open(ctx, deps, StoreName, func() State { return State{} }, Sanitize)}
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() (Profile, bool) {
	st := s.c.Snapshot()
	if st.Profile == nil {
		return Profile{}, false
	}
	return *st.Profile, true
}

func (s *Store) Set(ctx context.Context, p Profile) (Profile, error) {
	next, err := s.c.Apply(ctx, "set", func(st State) (State, error) { return st.Set(p) })
	if err != nil {
		return Profile{}, err
	}
	return *next.Profile, nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.c.Apply(ctx, "clear", func(st State) (State, error) { return st.Clear(), nil })
	return err
}
