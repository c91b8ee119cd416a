package task

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type taskRules struct {
	Title    string `validate:"required,max=500"`
	Priority string `validate:"oneof=low medium high"`
}

type categoryRules struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"omitempty,hexcolor"`
}

func validateTask(t Task) error {
	err := validate.Struct(taskRules{
		Title:    strings.TrimSpace(t.Title),
		Priority: string(t.Priority),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func validateCategory(c Category) error {
	err := validate.Struct(categoryRules{
		Name:  strings.TrimSpace(c.Name),
		Color: c.Color,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
