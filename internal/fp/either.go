package fp

import "fmt"

// Either is a railway result: Right carries a success value, Left carries
// the error that derailed the computation. Failures are ordinary Go errors
// so callers can inspect them with errors.As against the domain taxonomy.
//
// The zero value is a Left with a nil error; construct values through
// Right and Left.
type Either[T any] struct {
	value T
	err   error
	right bool
}

// Right wraps a success value.
func Right[T any](v T) Either[T] {
	return Either[T]{value: v, right: true}
}

// Left wraps a failure.
func Left[T any](err error) Either[T] {
	return Either[T]{err: err}
}

// IsRight reports whether the computation succeeded.
func (e Either[T]) IsRight() bool { return e.right }

// IsLeft reports whether the computation failed.
func (e Either[T]) IsLeft() bool { return !e.right }

// Get unpacks the success value in the comma-ok form.
func (e Either[T]) Get() (T, bool) { return e.value, e.right }

// Err returns the failure, or nil when the Either is Right.
func (e Either[T]) Err() error {
	if e.right {
		return nil
	}
	return e.err
}

// GetOrElse returns the success value, or def when Left.
func (e Either[T]) GetOrElse(def T) T {
	if !e.right {
		return def
	}
	return e.value
}

// Unpack converts the Either back to Go's conventional (value, error) pair.
func (e Either[T]) Unpack() (T, error) {
	return e.value, e.Err()
}

// Map applies f to the success value. Left passes through untouched and
// f is never called.
func (e Either[T]) Map(f func(T) T) Either[T] {
	if !e.right {
		return e
	}
	return Right(f(e.value))
}

// Bind applies f, which may itself fail, to the success value. Left
// passes through untouched and f is never called.
func (e Either[T]) Bind(f func(T) Either[T]) Either[T] {
	if !e.right {
		return e
	}
	return f(e.value)
}

// MapError rewrites the failure of a Left. Right passes through untouched.
func (e Either[T]) MapError(f func(error) error) Either[T] {
	if e.right {
		return e
	}
	return Left[T](f(e.err))
}

// ToMaybe drops the failure, keeping only presence or absence.
func (e Either[T]) ToMaybe() Maybe[T] {
	if !e.right {
		return Nothing[T]()
	}
	return Just(e.value)
}

func (e Either[T]) String() string {
	if !e.right {
		return fmt.Sprintf("Left(%v)", e.err)
	}
	return fmt.Sprintf("Right(%v)", e.value)
}

// MapEither is the type-changing form of Either.Map.
func MapEither[T, U any](e Either[T], f func(T) U) Either[U] {
	if v, ok := e.Get(); ok {
		return Right(f(v))
	}
	return Left[U](e.Err())
}

// BindEither is the type-changing form of Either.Bind.
func BindEither[T, U any](e Either[T], f func(T) Either[U]) Either[U] {
	if v, ok := e.Get(); ok {
		return f(v)
	}
	return Left[U](e.Err())
}

// FromResult lifts Go's conventional (value, error) pair into an Either.
func FromResult[T any](v T, err error) Either[T] {
	if err != nil {
		return Left[T](err)
	}
	return Right(v)
}
