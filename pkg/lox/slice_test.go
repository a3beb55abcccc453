package lox_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"realty_extractor/pkg/lox"
)

func TestMapErr(t *testing.T) {
	rq := require.New(t)

	got, err := lox.MapErr([]string{"1", "2", "3"}, strconv.Atoi)
	rq.NoError(err)
	rq.Equal([]int{1, 2, 3}, got)

	got, err = lox.MapErr([]string{"1", "x"}, strconv.Atoi)
	rq.Nil(got)

	var numErr *strconv.NumError
	rq.True(errors.As(err, &numErr))
}
