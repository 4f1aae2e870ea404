package coremain

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Knetic/govaluate"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/sllist/pkg/list"
	"github.com/pmkol/sllist/pkg/ordered_list"
	"github.com/pmkol/sllist/pkg/unordered_list"
)

const defaultTarget = "main"

// RunScript executes cfg.Steps on freshly created lists. Query results
// and prints are written to out.
func RunScript(cfg *Config, lg *zap.Logger, out io.Writer, m *metrics) error {
	switch cfg.List.ElemType {
	case "", "int":
		s, err := newSession[int](cfg.List.Variant, strconv.Atoi, lg, out, m)
		if err != nil {
			return err
		}
		return s.run(cfg.Steps)
	case "string":
		s, err := newSession[string](cfg.List.Variant, func(s string) (string, error) { return s, nil }, lg, out, m)
		if err != nil {
			return err
		}
		return s.run(cfg.Steps)
	default:
		return fmt.Errorf("unsupported elem type %q", cfg.List.ElemType)
	}
}

// variant creates and deep copies lists of one concrete kind.
type variant[V any] struct {
	new    func() list.LinkedList[V]
	clone  func(l list.LinkedList[V]) list.LinkedList[V]
	assign func(dst, src list.LinkedList[V])
}

func newVariant[V constraints.Ordered](name string) (*variant[V], error) {
	switch name {
	case "", "unordered":
		return &variant[V]{
			new: func() list.LinkedList[V] { return unordered_list.New[V]() },
			clone: func(l list.LinkedList[V]) list.LinkedList[V] {
				return l.(*unordered_list.List[V]).Clone()
			},
			assign: func(dst, src list.LinkedList[V]) {
				dst.(*unordered_list.List[V]).Assign(src.(*unordered_list.List[V]))
			},
		}, nil
	case "ordered":
		return &variant[V]{
			new: func() list.LinkedList[V] { return ordered_list.New[V]() },
			clone: func(l list.LinkedList[V]) list.LinkedList[V] {
				return l.(*ordered_list.List[V]).Clone()
			},
			assign: func(dst, src list.LinkedList[V]) {
				dst.(*ordered_list.List[V]).Assign(src.(*ordered_list.List[V]))
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown list variant %q", name)
	}
}

type session[V constraints.Ordered] struct {
	lg    *zap.Logger
	out   io.Writer
	m     *metrics
	v     *variant[V]
	parse func(string) (V, error)
	lists map[string]list.LinkedList[V]
}

func newSession[V constraints.Ordered](
	variantName string,
	parse func(string) (V, error),
	lg *zap.Logger,
	out io.Writer,
	m *metrics,
) (*session[V], error) {
	v, err := newVariant[V](variantName)
	if err != nil {
		return nil, err
	}
	return &session[V]{
		lg:    lg,
		out:   out,
		m:     m,
		v:     v,
		parse: parse,
		lists: map[string]list.LinkedList[V]{defaultTarget: v.new()},
	}, nil
}

func (s *session[V]) run(steps []StepConfig) error {
	defer func() {
		for _, l := range s.lists {
			l.Destroy()
		}
	}()

	for i := range steps {
		sc := &steps[i]
		if err := s.exec(sc); err != nil {
			return fmt.Errorf("step #%d %s, %w", i, sc.Op, err)
		}
		s.m.ops.WithLabelValues(sc.Op).Inc()
	}
	return nil
}

func targetName(sc *StepConfig) string {
	if len(sc.Target) == 0 {
		return defaultTarget
	}
	return sc.Target
}

func (s *session[V]) target(sc *StepConfig) (list.LinkedList[V], error) {
	name := targetName(sc)
	l, ok := s.lists[name]
	if !ok {
		return nil, fmt.Errorf("list %s does not exist", name)
	}
	return l, nil
}

func (s *session[V]) values(sc *StepConfig) ([]V, error) {
	raw := sc.Values
	if len(sc.Value) > 0 {
		raw = append([]string{sc.Value}, raw...)
	}
	if len(raw) == 0 {
		return nil, errors.New("missing value")
	}
	vs := make([]V, 0, len(raw))
	for _, r := range raw {
		v, err := s.parse(r)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q, %w", r, err)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func (s *session[V]) exec(sc *StepConfig) error {
	name := targetName(sc)
	s.lg.Debug("exec step", zap.String("op", sc.Op), zap.String("list", name))

	switch sc.Op {
	case "copy":
		src, err := s.target(sc)
		if err != nil {
			return err
		}
		if len(sc.To) == 0 {
			return errors.New("missing copy destination")
		}
		if old, ok := s.lists[sc.To]; ok {
			s.v.assign(old, src)
		} else {
			s.lists[sc.To] = s.v.clone(src)
		}
		s.m.length.WithLabelValues(sc.To).Set(float64(s.lists[sc.To].Len()))
		return nil
	case "assign":
		src, ok := s.lists[sc.From]
		if !ok {
			return fmt.Errorf("list %s does not exist", sc.From)
		}
		dst, ok := s.lists[name]
		if !ok {
			dst = s.v.new()
			s.lists[name] = dst
		}
		s.v.assign(dst, src)
		s.m.length.WithLabelValues(name).Set(float64(dst.Len()))
		return nil
	}

	l, err := s.target(sc)
	if err != nil {
		return err
	}
	defer func() {
		s.m.length.WithLabelValues(name).Set(float64(l.Len()))
	}()

	switch sc.Op {
	case "insert_first", "insert_last":
		vs, err := s.values(sc)
		if err != nil {
			return err
		}
		for _, v := range vs {
			if sc.Op == "insert_first" {
				l.InsertFirst(v)
			} else {
				l.InsertLast(v)
			}
		}
	case "delete":
		vs, err := s.values(sc)
		if err != nil {
			return err
		}
		for _, v := range vs {
			if !l.DeleteNode(v) {
				s.lg.Info("value to be deleted is not in the list", zap.String("list", name), zap.Any("value", v))
			}
		}
	case "search":
		vs, err := s.values(sc)
		if err != nil {
			return err
		}
		for _, v := range vs {
			fmt.Fprintf(s.out, "search %v: %t\n", v, l.Search(v))
		}
	case "remove_at":
		if sc.Pos == nil {
			return errors.New("missing pos")
		}
		if err := l.RemoveAt(*sc.Pos); err != nil {
			var re *list.RangeError
			if !errors.As(err, &re) {
				return err
			}
			s.m.rangeErrors.Inc()
			s.lg.Warn("remove_at out of range", zap.String("list", name), zap.Int("pos", re.Pos), zap.Int("length", re.Len))
		}
	case "remove_where":
		n, err := removeWhere(l, sc.Expr)
		if err != nil {
			return err
		}
		s.lg.Debug("removed matching values", zap.String("list", name), zap.Int("removed", n))
	case "front", "back":
		if l.IsEmpty() {
			return fmt.Errorf("list %s is empty", name)
		}
		v := l.Front()
		if sc.Op == "back" {
			v = l.Back()
		}
		fmt.Fprintf(s.out, "%s: %v\n", sc.Op, v)
	case "length":
		fmt.Fprintf(s.out, "length: %d\n", l.Len())
	case "is_empty":
		fmt.Fprintf(s.out, "is_empty: %t\n", l.IsEmpty())
	case "print":
		return printList(s.out, l, sc.Format)
	case "destroy":
		l.Destroy()
	case "init":
		l.Init()
	case "verify":
		if err := l.Validate(); err != nil {
			return fmt.Errorf("list %s is corrupted, %w", name, err)
		}
	default:
		return fmt.Errorf("unknown op %q", sc.Op)
	}
	return nil
}

func printList[V any](w io.Writer, l list.LinkedList[V], format string) error {
	switch format {
	case "", "text":
		return l.Print(w)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(l.Slice()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown print format %q", format)
	}
}

// removeWhere removes every value for which expr evaluates to true.
// expr may use the parameters "value" and "index". The list is only
// modified if expr evaluates for all values.
func removeWhere[V any](l list.LinkedList[V], expr string) (int, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("invalid expression, %w", err)
	}
	for _, v := range e.Vars() {
		if v != "value" && v != "index" {
			return 0, fmt.Errorf("unknown parameter %s", v)
		}
	}

	match := make([]bool, 0, l.Len())
	i := 0
	for n := l.Head(); n != nil; n = n.Next() {
		res, err := e.Evaluate(map[string]interface{}{"value": n.Value, "index": i})
		if err != nil {
			return 0, fmt.Errorf("failed to evaluate at index %d, %w", i, err)
		}
		b, ok := res.(bool)
		if !ok {
			return 0, fmt.Errorf("expression returned %T, want bool", res)
		}
		match = append(match, b)
		i++
	}

	removed := 0
	var prev *list.Node[V]
	n := l.Head()
	for _, rm := range match {
		next := n.Next()
		if rm {
			l.RemoveAfter(prev)
			removed++
		} else {
			prev = n
		}
		n = next
	}
	return removed, nil
}
