package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/sim"
)

func TestOpenProjectAndParameters(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	path := writeProject(t, require, "width = 4.5\nheight = width\n# comment\n\ndepth = 2\n")
	backend := sim.NewBackend()
	require.NoError(backend.OpenProject(path))

	param, err := backend.Parameter("width")
	require.NoError(err)
	require.EqualValues(rpcad.Parameter{Value: 4.5, Expression: "4.5"}, param)

	param, err = backend.Parameter("height")
	require.NoError(err)
	require.EqualValues(rpcad.Parameter{Value: 4.5, Expression: "width"}, param)

	all, err := backend.Parameters()
	require.NoError(err)
	require.Len(all, 3)
	require.EqualValues(2.0, all["depth"].Value)

	_, err = backend.Parameter("missing")
	require.ErrorIs(err, rpcad.ErrUnknownParameter)

	status, err := backend.Status()
	require.NoError(err)
	require.EqualValues(rpcad.Status{Document: path, Parameters: 3}, status)
}

func TestNoOpenProject(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	backend := sim.NewBackend()
	_, err := backend.Parameter("width")
	require.ErrorIs(err, rpcad.ErrNoOpenProject)
	_, err = backend.Parameters()
	require.ErrorIs(err, rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.SetParameter("width", rpcad.Value(1)), rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.SaveProject(), rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.CloseProject(), rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.ExportProject("out.step"), rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.Undo(1), rpcad.ErrNoOpenProject)
	require.ErrorIs(backend.Reload(), rpcad.ErrNoOpenProject)

	status, err := backend.Status()
	require.NoError(err)
	require.EqualValues(rpcad.Status{}, status)
}

func TestSetParameterAndUndo(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	backend := sim.NewBackend()
	backend.NewDocument("test")
	backend.DefineParameter("width", "1")
	backend.DefineParameter("height", "2")

	require.NoError(backend.SetParameter("width", rpcad.Value(3)))
	require.NoError(backend.SetParameter("width", rpcad.Expression("height")))
	param, err := backend.Parameter("width")
	require.NoError(err)
	require.EqualValues(2.0, param.Value)

	require.ErrorIs(backend.SetParameter("missing", rpcad.Value(1)), rpcad.ErrUnknownParameter)
	require.ErrorIs(backend.SetParameter("width", rpcad.Expression("unknown")), rpcad.ErrUnknownParameter)
	require.Error(backend.SetParameter("width", rpcad.Expression("width")))

	require.NoError(backend.Undo(1))
	param, err = backend.Parameter("width")
	require.NoError(err)
	require.EqualValues(rpcad.Parameter{Value: 3, Expression: "3"}, param)

	// More undos than history entries is not an error.
	require.NoError(backend.Undo(5))
	param, err = backend.Parameter("width")
	require.NoError(err)
	require.EqualValues(rpcad.Parameter{Value: 1, Expression: "1"}, param)
}

func TestSaveAndReopen(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	path := writeProject(t, require, "width = 1\n")
	backend := sim.NewBackend()
	require.NoError(backend.OpenProject(path))
	require.NoError(backend.SetParameter("width", rpcad.Value(7)))
	require.NoError(backend.SaveProject())

	reopened := sim.NewBackend()
	require.NoError(reopened.OpenProject(path))
	param, err := reopened.Parameter("width")
	require.NoError(err)
	require.EqualValues(7.0, param.Value)
}

func TestExportProject(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	backend := sim.NewBackend()
	backend.NewDocument("part")
	backend.DefineParameter("width", "1")

	out := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(backend.ExportProject(out))
	data, err := os.ReadFile(out)
	require.NoError(err)
	require.Contains(string(data), "stl")
	require.Contains(string(data), "width = 1")

	require.ErrorIs(backend.ExportProject(filepath.Join(t.TempDir(), "part.txt")), rpcad.ErrUnsupportedFormat)
}

func TestCloseProject(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	backend := sim.NewBackend()
	backend.NewDocument("part")
	require.NoError(backend.CloseProject())
	_, err := backend.Parameters()
	require.ErrorIs(err, rpcad.ErrNoOpenProject)
}

func TestPhysicalProperties(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	backend := sim.NewBackend()
	backend.NewDocument("part")
	backend.DefineParameter("size", "2")

	props, err := backend.PhysicalProperties([]rpcad.PhysicalProperty{
		rpcad.Mass, rpcad.Volume, rpcad.Area, rpcad.Density, rpcad.CenterOfMass, rpcad.BoundingBox,
	}, "", rpcad.Medium)
	require.NoError(err)
	require.EqualValues(8000.0, *props[rpcad.Mass].Scalar)
	require.EqualValues(8.0, *props[rpcad.Volume].Scalar)
	require.EqualValues(24.0, *props[rpcad.Area].Scalar)
	require.EqualValues(1000.0, *props[rpcad.Density].Scalar)
	require.EqualValues([]float64{1, 1, 1}, props[rpcad.CenterOfMass].Vector)
	require.EqualValues(rpcad.Box{Max: [3]float64{2, 2, 2}}, *props[rpcad.BoundingBox].Box)

	_, err = backend.PhysicalProperties([]rpcad.PhysicalProperty{"weight"}, "", rpcad.Medium)
	require.Error(err)
}

var _ rpcad.Backend = (*sim.Backend)(nil)

func writeProject(t *testing.T, require *require.Assertions, content string) string {
	path := filepath.Join(t.TempDir(), "model.step")
	require.NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}
