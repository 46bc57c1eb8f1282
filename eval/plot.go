package eval

import (
	"math"

	"fortio.org/log"
	"fortio.org/safecast"
	"grol.io/calc/ast"
	"grol.io/calc/object"
)

// MaxPlotPoints is the maximum number of points of one plot.
const MaxPlotPoints = 1 << 20

// plot(expr, var, min, max, step) samples expr for var going from min to max
// and hands the points to the interpreter's Plotter. Evaluates to 1.
func evalPlot(s *State, node ast.Operation) (ast.Node, error) {
	if s.Interp.Plotter == nil {
		return nil, s.errorf(object.InvalidOperation, "no plotter configured")
	}
	expr := node.Children[0]
	v, ok := node.Children[1].(ast.Variable)
	if !ok {
		return nil, s.errorf(object.MalformedNode, "plot variable %s is not a variable", node.Children[1].String())
	}
	if s.Env.ContainsKey(v.Name) {
		return nil, s.errorf(object.MalformedNode, "plot variable %s is already bound", v.Name)
	}
	if err := s.checkPlottable(expr, v.Name); err != nil {
		return nil, err
	}
	minX, err := s.toDouble(node.Children[2])
	if err != nil {
		return nil, err
	}
	maxX, err := s.toDouble(node.Children[3])
	if err != nil {
		return nil, err
	}
	step, err := s.toDouble(node.Children[4])
	if err != nil {
		return nil, err
	}
	if minX > maxX || !(step > 0) {
		return nil, s.errorf(object.MalformedNode, "invalid plot range %s to %s step %s",
			ast.FormatNumber(minX), ast.FormatNumber(maxX), ast.FormatNumber(step))
	}
	n, err := safecast.Truncate[int](math.Floor((maxX-minX)/step) + 1)
	if err != nil {
		return nil, s.errorf(object.MalformedNode, "can't plot %s points: %v", ast.FormatNumber((maxX-minX)/step), err)
	}
	if n > MaxPlotPoints {
		return nil, s.errorf(object.MalformedNode, "%d points, more than the maximum %d", n, MaxPlotPoints)
	}
	if ok, free := object.SizeOk(n, object.PointSize); !ok {
		return nil, s.errorf(object.MalformedNode, "%d points would exceed the %d bytes of free memory", n, free)
	}
	xs, ys, err := s.sample(expr, v.Name, minX, step, n)
	if err != nil {
		return nil, err
	}
	log.LogVf("plot: %d points for %s", len(xs), expr.String())
	s.Interp.Plotter.DrawScatterPlot(expr.String(), v.Name, "", xs, ys)
	return ast.NewNumber(1), nil
}

func (s *State) sample(expr ast.Node, name string, minX, step float64, n int) ([]float64, []float64, error) {
	defer s.Env.Remove(name)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := range n {
		x := minX + float64(i)*step
		s.Env.Put(name, ast.NewNumber(x))
		y, err := s.toDouble(expr)
		if err != nil {
			return nil, nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// checkPlottable verifies expr only uses arithmetic and that its variables are
// either the plot variable or bound.
func (s *State) checkPlottable(expr ast.Node, name string) error {
	switch expr := expr.(type) {
	case ast.Variable:
		if expr.Name != name && !s.Env.ContainsKey(expr.Name) {
			return s.errorf(object.UndefinedVariable, "%s", expr.Name)
		}
	case ast.Operation:
		if !expr.Op.IsArithmetic() {
			return s.errorf(object.InvalidOperation, "%s can't be plotted", expr.Name)
		}
		for _, c := range expr.Children {
			if err := s.checkPlottable(c, name); err != nil {
				return err
			}
		}
	}
	return nil
}
