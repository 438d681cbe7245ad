package validator

import (
	"context"
	v10validator "github.com/go-playground/validator/v10"
	"time"
)

type Validator struct {
	engine Engine
}

type Engine interface {
	StructCtx(ctx context.Context, s any) error
	VarCtx(ctx context.Context, field any, tag string) error
}

func New(e Engine) *Validator {
	return &Validator{engine: e}
}

func (v *Validator) Struct(ctx context.Context, s any) error {
	return v.engine.StructCtx(ctx, s)
}

func (v *Validator) Var(ctx context.Context, field any, tag string) error {
	return v.engine.VarCtx(ctx, field, tag)
}

// NotFuture проверяет, что значение времени не позже конца текущего дня.
// Нулевое время считается валидным: отсутствующие границы периода
// отбрасываются тегом omitempty до этой проверки.
func NotFuture(fl v10validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	if t.IsZero() {
		return true
	}

	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	return t.Before(tomorrow)
}
