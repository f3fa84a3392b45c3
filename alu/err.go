package alu

import (
	"errors"

	"github.com/ezrec/risc16/translate"
)

var f = translate.From

var (
	ErrOpInvalid = errors.New(f("alu op invalid"))
)
