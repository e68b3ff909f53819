package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rating описывает оценку сервиса от 1 до 5.
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

const starGlyph = "⭐"

// ErrRatingInvalid возвращается, если значение оценки не является числом.
var ErrRatingInvalid = errors.New("rating is not a number")

var ratingColors = map[Rating]int{
	1: 0xFF0000,
	2: 0xFF7F00,
	3: 0xFFFF00,
	4: 0x7FFF00,
	5: 0x00FF00,
}

// DefaultRatingColor используется для значений вне таблицы.
const DefaultRatingColor = 0x3498DB

// ParseRating разбирает значение опции команды.
// Диапазон не проверяется: допустимые значения ограничивает набор вариантов команды.
func ParseRating(value string) (Rating, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrRatingInvalid, value)
	}
	return Rating(n), nil
}

// Stars возвращает оценку в виде повторённых звёзд.
func (r Rating) Stars() string {
	if r <= 0 {
		return ""
	}
	return strings.Repeat(starGlyph, int(r))
}

// Fraction возвращает оценку в виде "N/5".
func (r Rating) Fraction() string {
	return fmt.Sprintf("%d/%d", r, MaxRating)
}

// Display возвращает звёзды вместе с дробью, например "⭐⭐ (2/5)".
func (r Rating) Display() string {
	return fmt.Sprintf("%s (%s)", r.Stars(), r.Fraction())
}

// Color возвращает цвет embed по оценке.
func (r Rating) Color() int {
	if color, ok := ratingColors[r]; ok {
		return color
	}
	return DefaultRatingColor
}

// RatingChoice описывает один вариант выбора оценки в команде.
type RatingChoice struct {
	Label string
	Value string
}

// RatingChoices возвращает варианты от 1 до 5 звёзд.
func RatingChoices() []RatingChoice {
	choices := make([]RatingChoice, 0, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		noun := "estrellas"
		if r == 1 {
			noun = "estrella"
		}
		choices = append(choices, RatingChoice{
			Label: fmt.Sprintf("%s (%d %s)", r.Stars(), r, noun),
			Value: strconv.Itoa(int(r)),
		})
	}
	return choices
}
