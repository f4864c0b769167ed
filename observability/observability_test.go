package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najoast/sngofmt/config"
	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/stringify"
)

type opaque struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func resetGlobals(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prev)
		stringify.Default().SetOptions(stringify.DefaultOptions())
	})
}

func TestStrField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	node := core.NewNodeID(7, "10.0.0.1:4040")
	Str(logger.Info(), "msg", core.TupleOf(core.Atom("ping"), int32(1))).
		Str("node", stringify.NodeID(node)).
		Send()

	out := decode(t, &buf)
	assert.Equal(t, "@<>+@atom+@i32 ( 'ping', 1 )", out["msg"])
	assert.Equal(t, "7@10.0.0.1:4040", out["node"])
}

func TestStrFieldUnregistered(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Str(logger.Info(), "payload", opaque{}).Send()

	out := decode(t, &buf)
	assert.Equal(t, "<unregistered:observability.opaque>", out["payload"])
}

func TestValueObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().Object("sender", Value(core.ActorAddr{ID: 3, Node: core.NewNodeID(1, "a:1")})).Send()

	out := decode(t, &buf)
	assert.Equal(t, map[string]any{
		"type":  "@addr",
		"value": "actor:3/1@a:1",
	}, out["sender"])
}

func TestHeaderFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := core.MessageHeader{
		Sender:   core.ActorAddr{ID: 3, Node: core.NewNodeID(1, "a:1")},
		Receiver: core.GroupChannel(core.Group{Module: "local", Identifier: "chat"}),
		ID:       9,
	}
	Header(logger.Info(), h).Send()

	out := decode(t, &buf)
	assert.Equal(t, "actor:3/1@a:1", out["from"])
	assert.Equal(t, "group:local/chat", out["to"])
	assert.Equal(t, float64(9), out["msg_id"])
}

func TestErrField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Err(logger.Error(), errors.New("boom")).Send()
	out := decode(t, &buf)
	assert.Equal(t, "boom", out["error"])
	assert.Equal(t, "errors.errorString: boom", out["error_verbose"])

	buf.Reset()
	Err(logger.Info(), nil).Send()
	out = decode(t, &buf)
	assert.NotContains(t, out, "error")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level config.LogLevel
		want  zerolog.Level
	}{
		{config.LogLevelTrace, zerolog.TraceLevel},
		{config.LogLevelDebug, zerolog.DebugLevel},
		{config.LogLevelWarn, zerolog.WarnLevel},
		{config.LogLevelFatal, zerolog.FatalLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInitLoggerToFile(t *testing.T) {
	resetGlobals(t)

	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := InitLogger("test-app", core.NewNodeID(7, "10.0.0.1:4040"), config.LogConfig{
		Level:  config.LogLevelWarn,
		Format: "json",
		Output: path,
		Fields: map[string]string{"zone": "eu"},
	})
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &out))
	assert.Equal(t, "kept", out["message"])
	assert.Equal(t, "test-app", out["app"])
	assert.Equal(t, "7@10.0.0.1:4040", out["node"])
	assert.Equal(t, "eu", out["zone"])
}

func TestInitLoggerBadOutput(t *testing.T) {
	resetGlobals(t)

	_, _, err := InitLogger("x", core.NodeID{}, config.LogConfig{
		Output: filepath.Join(t.TempDir(), "missing", "app.log"),
	})
	assert.Error(t, err)
}

func TestReconfigure(t *testing.T) {
	resetGlobals(t)

	oldConfig := config.DefaultConfig()
	newConfig := config.DefaultConfig()
	newConfig.Log.Level = config.LogLevelError
	newConfig.Render.MaxTupleElements = 1
	newConfig.Render.UnregisteredMarker = "opaque"

	Reconfigure(oldConfig, newConfig)

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	opts := stringify.Default().Options()
	assert.Equal(t, 1, opts.MaxTupleElements)
	assert.Equal(t, "opaque", opts.UnregisteredMarker)

	s, err := stringify.Message(core.TupleOf(1, 2))
	require.NoError(t, err)
	assert.Equal(t, "@<>+@int+@int ( 1, ... )", s)
}

func TestDefaultRenderConfigMatchesRenderer(t *testing.T) {
	cfg := config.DefaultConfig().Render
	opts := stringify.DefaultOptions()

	assert.Equal(t, opts.MaxTupleElements, cfg.MaxTupleElements)
	assert.Equal(t, opts.UnregisteredMarker, cfg.UnregisteredMarker)
}
