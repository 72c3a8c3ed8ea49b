package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/zerr"

	telemetry "github.com/lotoze/ktrun/internal/adapters/telemetry/progrock"
)

func TestRecorder_VertexLifecycle(t *testing.T) {
	tape := progrock.NewTape()
	recorder := telemetry.NewRecorder(tape)

	_, vertex := recorder.Record(context.Background(), "hostTest")
	_, err := vertex.Stdout().Write([]byte("output\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_CompleteWithError(t *testing.T) {
	tape := progrock.NewTape()
	recorder := telemetry.NewRecorder(tape)

	_, vertex := recorder.Record(context.Background(), "iosTest")
	vertex.Complete(zerr.New("exit status 1"))

	require.NoError(t, recorder.Close())
}

func TestRecorder_Skipped(t *testing.T) {
	tape := progrock.NewTape()
	recorder := telemetry.NewRecorder(tape)

	_, vertex := recorder.Record(context.Background(), "iosTest")
	vertex.Skipped()

	require.NoError(t, recorder.Close())
}
