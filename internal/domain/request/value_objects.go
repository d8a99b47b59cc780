package request

import (
	"errors"
	"strings"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 4000
	MaxLocationLength    = 300
)

var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrEmptyCategory      = errors.New("category cannot be empty")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrLocationTooLong    = errors.New("location exceeds maximum length")
)

type Title struct {
	value string
}

func NewTitle(value string) (Title, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(trimmed) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: trimmed}, nil
}

func (t Title) String() string {
	return t.value
}

type Category struct {
	value string
}

func NewCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Category{}, ErrEmptyCategory
	}
	return Category{value: trimmed}, nil
}

func (c Category) String() string {
	return c.value
}

type Description struct {
	value string
}

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: trimmed}, nil
}

func (d Description) String() string {
	return d.value
}

type Location struct {
	value string
}

func NewLocation(value string) (Location, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxLocationLength {
		return Location{}, ErrLocationTooLong
	}
	return Location{value: trimmed}, nil
}

func (l Location) String() string {
	return l.value
}
