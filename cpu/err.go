package cpu

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

type ErrRegisterName string

func (er ErrRegisterName) Error() string {
	return f("register %v unknown", string(er))
}

func (er ErrRegisterName) Unwrap() error {
	return ErrRegisterInvalid
}
