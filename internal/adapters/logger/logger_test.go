package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/lotoze/ktrun/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Info("hello")

	require.Contains(t, buf.String(), "level=INFO")
	require.Contains(t, buf.String(), "msg=hello")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Warn("careful")

	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "msg=careful")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Error(zerr.New("something broke"))

	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "something broke")
}
