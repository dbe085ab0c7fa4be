package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/logger"
)

func TestName(t *testing.T) {
	assert.Equal(t, "ok_plant_a_north", Name(true, "Plant A_North"))
	assert.Equal(t, "nok_plant_a_north", Name(false, "Plant A_North"))
	assert.Equal(t, "ok_usina_são_joão", Name(true, "Usina São João"))
}

func TestFailureLines(t *testing.T) {
	assert.Equal(t, []string{"Timeout", "", "", ""}, FailureLines("Timeout", ""))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriter_SaveToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := NewFileSink(filepath.Join(dir, "{}.txt"))
	w := NewWriter(logger.Wrap(zap.NewNop()), sink)
	ctx := context.Background()

	name, err := w.Save(ctx, true, "Plant A_North", []string{"Inverter offline;high", "Tracker stuck"})
	require.NoError(t, err)
	assert.Equal(t, "ok_plant_a_north", name)
	assert.Equal(t, "Inverter offline;high\nTracker stuck\n", readFile(t, filepath.Join(dir, "ok_plant_a_north.txt")))

	_, err = w.Save(ctx, false, "Plant A_North", FailureLines("Timeout", "trace"))
	require.NoError(t, err)
	assert.Equal(t, "Timeout\n\n\ntrace\n", readFile(t, filepath.Join(dir, "nok_plant_a_north.txt")))
}

func TestWriter_OverwritesPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(logger.Wrap(zap.NewNop()), NewFileSink(filepath.Join(dir, "{}")))
	ctx := context.Background()

	_, err := w.Save(ctx, true, "Plant B_South", []string{"a", "b", "c"})
	require.NoError(t, err)
	_, err = w.Save(ctx, true, "Plant B_South", []string{"d"})
	require.NoError(t, err)

	assert.Equal(t, "d\n", readFile(t, filepath.Join(dir, "ok_plant_b_south")))
}

func TestWriter_EmptySuccess(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(logger.Wrap(zap.NewNop()), NewFileSink(filepath.Join(dir, "{}.txt")))

	_, err := w.Save(context.Background(), true, "Plant C_East", nil)
	require.NoError(t, err)
	assert.Equal(t, "", readFile(t, filepath.Join(dir, "ok_plant_c_east.txt")))
}

type failingSink struct{}

func (failingSink) Write(ctx context.Context, name string, lines []string) error {
	return errors.New("disk full")
}

type memorySink map[string][]string

func (m memorySink) Write(ctx context.Context, name string, lines []string) error {
	m[name] = lines
	return nil
}

func TestWriter_SinkError(t *testing.T) {
	mem := memorySink{}
	w := NewWriter(logger.Wrap(zap.NewNop()), mem, failingSink{})

	name, err := w.Save(context.Background(), true, "Plant A_North", []string{"x"})
	require.Error(t, err)
	assert.Equal(t, "ok_plant_a_north", name)
	assert.True(t, apperrors.IsKind(err, apperrors.KindIO))
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"x"}, mem["ok_plant_a_north"])
}

func TestFileSink_Path(t *testing.T) {
	s := NewFileSink("./output/{}.csv")
	assert.Equal(t, "./output/ok_x.csv", s.Path("ok_x"))
}
