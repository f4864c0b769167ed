package observability

import (
	"reflect"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/najoast/sngofmt/config"
	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/stringify"
)

// rendered defers rendering until zerolog writes the field, so disabled
// levels never pay for it.
type rendered struct {
	r *stringify.Renderer
	v any
}

func (v rendered) String() string {
	return v.r.Sprint(v.v)
}

// Value wraps a runtime value for zerolog's Stringer fields.
func Value(v any) zerolog.LogObjectMarshaler {
	return renderedObject{rendered{r: stringify.Default(), v: v}}
}

// renderedObject logs as {"type": "@name", "value": "..."}.
type renderedObject struct {
	rendered
}

func (o renderedObject) MarshalZerologObject(e *zerolog.Event) {
	if h, err := o.r.Registry().HandleFor(reflect.TypeOf(o.v)); err == nil {
		e.Str("type", h.Name())
	}
	e.Str("value", o.String())
}

// Str adds a rendered runtime value as a string field.
func Str(e *zerolog.Event, key string, v any) *zerolog.Event {
	return e.Stringer(key, rendered{r: stringify.Default(), v: v})
}

// With adds a rendered runtime value to a logger context.
func With(c zerolog.Context, key string, v any) zerolog.Context {
	return c.Stringer(key, rendered{r: stringify.Default(), v: v})
}

// Header adds the routing fields of a message header.
func Header(e *zerolog.Event, h core.MessageHeader) *zerolog.Event {
	r := stringify.Default()
	from, err := r.Address(h.Sender)
	e = e.Str("from", r.OrMarker(from, err))
	to, err := r.Channel(h.Receiver)
	return e.Str("to", r.OrMarker(to, err)).Uint64("msg_id", uint64(h.ID))
}

// Err adds err as "error" plus its verbose form.
func Err(e *zerolog.Event, err error) *zerolog.Event {
	if err == nil {
		return e
	}
	return e.Err(err).Str("error_verbose", stringify.Verbose(err))
}

// ApplyRenderConfig pushes render settings to the default renderer.
func ApplyRenderConfig(cfg config.RenderConfig) {
	stringify.Default().SetOptions(stringify.Options{
		MaxTupleElements:   cfg.MaxTupleElements,
		UnregisteredMarker: cfg.UnregisteredMarker,
	})
}

// Reconfigure is a config.ConfigChangeCallback that applies log level and
// render settings without a restart.
func Reconfigure(oldConfig, newConfig *config.Config) {
	ApplyRenderConfig(newConfig.Render)
	if oldConfig == nil || oldConfig.Log.Level != newConfig.Log.Level {
		level := ParseLevel(newConfig.Log.Level)
		zerolog.SetGlobalLevel(level)
		log.Info().Str("level", level.String()).Msg("log level changed")
	}
}
