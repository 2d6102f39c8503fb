package main

import (
	"strconv"
	"strings"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

func parseUint256(name, value string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, errors.Wrapf(hl.ErrInvalidArgument, "%s '%s': %v", name, value, err)
	}
	return v, nil
}

func parseUint64(name, value string) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(hl.ErrInvalidArgument, "%s '%s': %v", name, value, err)
	}
	return v, nil
}

// parseSerials accepts serials as separate arguments or comma separated.
func parseSerials(values []string) (serials []int64, err error) {
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			var serial int64
			if serial, err = strconv.ParseInt(part, 10, 64); err != nil || serial <= 0 {
				err = errors.Wrapf(hl.ErrInvalidArgument, "serial '%s'", part)
				return
			}
			serials = append(serials, serial)
		}
	}
	if len(serials) == 0 {
		err = errors.Wrap(hl.ErrInvalidArgument, "no serials given")
	}
	return
}

// parseSerial accepts exactly one serial.
func parseSerial(value string) (int64, error) {
	serials, err := parseSerials([]string{value})
	if err != nil {
		return 0, err
	}
	if len(serials) != 1 {
		return 0, errors.Wrapf(hl.ErrInvalidArgument, "expected a single serial, got '%s'", value)
	}
	return serials[0], nil
}

func parseHbar(value string) (hl.Hbar, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "ℏ")), 64)
	if err != nil {
		return 0, errors.Wrapf(hl.ErrInvalidArgument, "hbar amount '%s': %v", value, err)
	}
	return hl.HbarFrom(v), nil
}
