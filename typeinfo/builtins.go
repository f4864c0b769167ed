package typeinfo

import (
	"encoding/hex"
	"strconv"
	"time"
)

// RegisterBuiltins announces the primitive types and their formatters.
func RegisterBuiltins(r *Registry) error {
	steps := []func() error{
		builtin(r, "@bool", strconv.FormatBool),
		builtin(r, "@int", strconv.Itoa),
		builtin(r, "@i8", func(v int8) string { return strconv.FormatInt(int64(v), 10) }),
		builtin(r, "@i16", func(v int16) string { return strconv.FormatInt(int64(v), 10) }),
		builtin(r, "@i32", func(v int32) string { return strconv.FormatInt(int64(v), 10) }),
		builtin(r, "@i64", func(v int64) string { return strconv.FormatInt(v, 10) }),
		builtin(r, "@uint", func(v uint) string { return strconv.FormatUint(uint64(v), 10) }),
		builtin(r, "@u8", func(v uint8) string { return strconv.FormatUint(uint64(v), 10) }),
		builtin(r, "@u16", func(v uint16) string { return strconv.FormatUint(uint64(v), 10) }),
		builtin(r, "@u32", func(v uint32) string { return strconv.FormatUint(uint64(v), 10) }),
		builtin(r, "@u64", func(v uint64) string { return strconv.FormatUint(v, 10) }),
		builtin(r, "@f32", func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }),
		builtin(r, "@f64", func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }),
		builtin(r, "@str", strconv.Quote),
		builtin(r, "@bytes", func(v []byte) string { return "0x" + hex.EncodeToString(v) }),
		builtin(r, "@duration", time.Duration.String),
		builtin(r, "@time", func(v time.Time) string { return v.Format(time.RFC3339Nano) }),
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func builtin[T any](r *Registry, name string, fn func(T) string) func() error {
	return func() error {
		_, err := Register(r, name, fn)
		return err
	}
}
