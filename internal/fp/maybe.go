package fp

import "fmt"

// Maybe represents an optional value: either Just(value) or Nothing.
//
// The zero value is Nothing, so an uninitialized Maybe is safe to use.
// Once a chain reaches Nothing, every subsequent Map/Bind short-circuits
// without invoking the supplied function.
type Maybe[T any] struct {
	value T
	just  bool
}

// Just wraps a present value.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, just: true}
}

// Nothing returns the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr lifts a nullable pointer into a Maybe: nil becomes Nothing.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return Nothing[T]()
	}
	return Just(*p)
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool { return m.just }

// IsNothing reports whether the value is absent.
func (m Maybe[T]) IsNothing() bool { return !m.just }

// Get unpacks the Maybe in the comma-ok form.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.just }

// GetOrElse returns the wrapped value, or def when Nothing.
func (m Maybe[T]) GetOrElse(def T) T {
	if !m.just {
		return def
	}
	return m.value
}

// Map applies f to a present value. Nothing passes through untouched and
// f is never called.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if !m.just {
		return m
	}
	return Just(f(m.value))
}

// Bind applies f, which may itself produce Nothing, to a present value.
// Nothing passes through untouched and f is never called.
func (m Maybe[T]) Bind(f func(T) Maybe[T]) Maybe[T] {
	if !m.just {
		return m
	}
	return f(m.value)
}

// ToEither converts the Maybe into an Either, using err as the failure
// when the value is absent.
func (m Maybe[T]) ToEither(err error) Either[T] {
	if !m.just {
		return Left[T](err)
	}
	return Right(m.value)
}

func (m Maybe[T]) String() string {
	if !m.just {
		return "Nothing"
	}
	return fmt.Sprintf("Just(%v)", m.value)
}

// MapMaybe is the type-changing form of Maybe.Map. Go methods cannot
// introduce new type parameters, so transformations from T to U live at
// package level.
func MapMaybe[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if v, ok := m.Get(); ok {
		return Just(f(v))
	}
	return Nothing[U]()
}

// BindMaybe is the type-changing form of Maybe.Bind.
func BindMaybe[T, U any](m Maybe[T], f func(T) Maybe[U]) Maybe[U] {
	if v, ok := m.Get(); ok {
		return f(v)
	}
	return Nothing[U]()
}
