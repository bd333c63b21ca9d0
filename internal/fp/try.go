package fp

import "fmt"

// PanicError is the failure produced when Try recovers a panic. Value
// holds whatever was passed to panic; Error renders it verbatim.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

// Try runs f on the railway: a returned error becomes Left, a panic is
// recovered into Left(*PanicError), and anything else becomes Right.
func Try[T any](f func() (T, error)) (res Either[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Left[T](&PanicError{Value: r})
		}
	}()
	v, err := f()
	if err != nil {
		return Left[T](err)
	}
	return Right(v)
}
