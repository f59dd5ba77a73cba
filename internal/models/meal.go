package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when meal attributes or store arguments are invalid.
// It is always wrapped with a message describing the offending value.
var ErrValidation = errors.New("validation failed")

// Difficulty is how hard a meal is to prepare.
type Difficulty string

const (
	DifficultyLow  Difficulty = "LOW"
	DifficultyMed  Difficulty = "MED"
	DifficultyHigh Difficulty = "HIGH"
)

// Valid reports whether d is one of LOW, MED or HIGH.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

var validate = validator.New()

// Meal represents one menu item and its battle record.
type Meal struct {
	// ID is the identifier assigned by the store on creation.
	ID int64

	// Name is the meal's name (e.g., "Manti"). Unique across all stored meals.
	Name string

	// Cuisine is free text (e.g., "Turkish", "Japanese").
	Cuisine string

	// Price must be strictly positive.
	Price float64 `validate:"gt=0"`

	// Difficulty is one of LOW, MED or HIGH.
	Difficulty Difficulty `validate:"oneof=LOW MED HIGH"`

	// Deleted marks the meal as soft-deleted. Once set it is never cleared.
	Deleted bool

	// Battles counts every battle the meal took part in.
	Battles int `validate:"gte=0"`

	// Wins counts battles won. Never exceeds Battles.
	Wins int `validate:"gte=0,ltefield=Battles"`
}

// NewMeal builds a meal with zeroed battle statistics and validates it.
func NewMeal(id int64, name, cuisine string, price float64, difficulty Difficulty) (*Meal, error) {
	meal := &Meal{
		ID:         id,
		Name:       name,
		Cuisine:    cuisine,
		Price:      price,
		Difficulty: difficulty,
	}
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	return meal, nil
}

// Validate checks the meal's attributes.
// Failures wrap ErrValidation and name the first offending field.
func (m *Meal) Validate() error {
	if math.IsInf(m.Price, 0) {
		return fmt.Errorf("%w: invalid price %v: price must be a positive number", ErrValidation, m.Price)
	}

	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Price":
		return fmt.Errorf("%w: invalid price %v: price must be a positive number", ErrValidation, m.Price)
	case "Difficulty":
		return fmt.Errorf("%w: invalid difficulty level %q: must be LOW, MED or HIGH", ErrValidation, m.Difficulty)
	case "Wins":
		return fmt.Errorf("%w: wins (%d) cannot exceed battles (%d)", ErrValidation, m.Wins, m.Battles)
	default:
		return fmt.Errorf("%w: invalid %s: failed %q check", ErrValidation, fe.Field(), fe.Tag())
	}
}
