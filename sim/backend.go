package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dkavolis/rpcad"
)

// Backend is an in-memory parametric document. Projects are plain text files
// of "name = expression" lines; expressions are float literals or references
// to other parameters. Every mutation pushes an undo snapshot.
type Backend struct {
	document string
	params   map[string]string
	history  []snapshot
}

type snapshot struct {
	params map[string]string
}

func NewBackend() *Backend {
	return &Backend{}
}

// NewDocument opens an empty unsaved document, primarily for tests and the
// simulator binary.
func (b *Backend) NewDocument(name string) {
	b.document = name
	b.params = make(map[string]string)
	b.history = nil
}

// DefineParameter adds a parameter without recording undo history, the way a
// document template would.
func (b *Backend) DefineParameter(name string, expression string) {
	if b.params == nil {
		b.params = make(map[string]string)
	}
	b.params[name] = expression
}

func (b *Backend) Parameter(name string) (rpcad.Parameter, error) {
	if b.params == nil {
		return rpcad.Parameter{}, rpcad.ErrNoOpenProject
	}
	expression, ok := b.params[name]
	if !ok {
		return rpcad.Parameter{}, errors.WithMessage(rpcad.ErrUnknownParameter, name)
	}
	value, err := b.eval(expression, map[string]bool{name: true})
	if err != nil {
		return rpcad.Parameter{}, err
	}
	return rpcad.Parameter{Value: value, Expression: expression}, nil
}

func (b *Backend) Parameters() (map[string]rpcad.Parameter, error) {
	if b.params == nil {
		return nil, rpcad.ErrNoOpenProject
	}
	all := make(map[string]rpcad.Parameter, len(b.params))
	for name := range b.params {
		param, err := b.Parameter(name)
		if err != nil {
			return nil, err
		}
		all[name] = param
	}
	return all, nil
}

func (b *Backend) SetParameter(name string, value rpcad.ParameterValue) error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	if _, ok := b.params[name]; !ok {
		return errors.WithMessage(rpcad.ErrUnknownParameter, name)
	}

	expression := value.String()
	if !value.IsNumeric() {
		_, err := b.evalAs(name, expression)
		if err != nil {
			return err
		}
	}

	b.push()
	b.params[name] = expression
	return nil
}

func (b *Backend) OpenProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithMessagef(err, "open project %s", path)
	}

	params := make(map[string]string)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, expression, ok := strings.Cut(line, "=")
		if !ok {
			return errors.Errorf("project %s: line %d: expected name = expression", path, i+1)
		}
		params[strings.TrimSpace(name)] = strings.TrimSpace(expression)
	}

	b.document = path
	b.params = params
	b.history = nil
	return nil
}

func (b *Backend) SaveProject() error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	if b.document == "" {
		return errors.New("document has no path")
	}
	return os.WriteFile(b.document, []byte(b.render()), 0o644)
}

func (b *Backend) CloseProject() error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	b.document = ""
	b.params = nil
	b.history = nil
	return nil
}

func (b *Backend) ExportProject(path string) error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	format, err := rpcad.ExportFormatFromPath(path)
	if err != nil {
		return err
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# exported as %s from %s\n", format, filepath.Base(b.document))
	buf.WriteString(b.render())
	return os.WriteFile(path, []byte(buf.String()), 0o644)
}

func (b *Backend) Undo(count int) error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	for ; count > 0 && len(b.history) > 0; count-- {
		last := b.history[len(b.history)-1]
		b.history = b.history[:len(b.history)-1]
		b.params = last.params
	}
	return nil
}

func (b *Backend) Reload() error {
	if b.params == nil {
		return rpcad.ErrNoOpenProject
	}
	_, err := b.Parameters()
	return err
}

func (b *Backend) Status() (rpcad.Status, error) {
	return rpcad.Status{
		Document:   b.document,
		Parameters: len(b.params),
	}, nil
}

// PhysicalProperties derives deterministic values from a parameter named
// "size" (default 1) so tests can assert exact numbers.
func (b *Backend) PhysicalProperties(
	props []rpcad.PhysicalProperty,
	part string,
	accuracy rpcad.Accuracy,
) (map[rpcad.PhysicalProperty]rpcad.PropertyValue, error) {
	if b.params == nil {
		return nil, rpcad.ErrNoOpenProject
	}

	size := 1.0
	if param, err := b.Parameter("size"); err == nil {
		size = param.Value
	}

	const density = 1000.0
	volume := size * size * size
	result := make(map[rpcad.PhysicalProperty]rpcad.PropertyValue, len(props))
	for _, prop := range props {
		switch prop {
		case rpcad.Mass:
			result[prop] = rpcad.Scalar(density * volume)
		case rpcad.Area:
			result[prop] = rpcad.Scalar(6 * size * size)
		case rpcad.Volume:
			result[prop] = rpcad.Scalar(volume)
		case rpcad.Density:
			result[prop] = rpcad.Scalar(density)
		case rpcad.CenterOfMass:
			result[prop] = rpcad.Vector(size/2, size/2, size/2)
		case rpcad.BoundingBox:
			result[prop] = rpcad.PropertyValue{Box: &rpcad.Box{
				Max: [3]float64{size, size, size},
			}}
		default:
			return nil, errors.Errorf("unknown physical property %s", prop)
		}
	}
	return result, nil
}

func (b *Backend) push() {
	params := make(map[string]string, len(b.params))
	for name, expression := range b.params {
		params[name] = expression
	}
	b.history = append(b.history, snapshot{params: params})
}

func (b *Backend) render() string {
	names := make([]string, 0, len(b.params))
	for name := range b.params {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf strings.Builder
	for _, name := range names {
		fmt.Fprintf(&buf, "%s = %s\n", name, b.params[name])
	}
	return buf.String()
}

func (b *Backend) evalAs(name string, expression string) (float64, error) {
	return b.eval(expression, map[string]bool{name: true})
}

func (b *Backend) eval(expression string, seen map[string]bool) (float64, error) {
	value, err := strconv.ParseFloat(expression, 64)
	if err == nil {
		return value, nil
	}

	next, ok := b.params[expression]
	if !ok {
		return 0, errors.WithMessage(rpcad.ErrUnknownParameter, expression)
	}
	if seen[expression] {
		return 0, errors.Errorf("parameter %s references itself", expression)
	}
	seen[expression] = true
	return b.eval(next, seen)
}
