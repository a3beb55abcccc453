package tests

import (
	"math/rand"
	"time"
)

// Randomizer — источник случайных значений для тестов на свойства.
type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
	}
}

// Pick возвращает nil или указатель на значение от gen.
func Pick[T any](r Randomizer, gen func() T) *T {
	if r.Bool() {
		return nil
	}
	v := gen()
	return &v
}
