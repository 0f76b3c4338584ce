package lang

import (
	"log/slog"
	"slices"
)

// checkRecursion rejects f if installing it under name would let any
// function reach itself through a chain of calls. The table is not modified.
//
// The checks run in order: self, dual, then cross. The cross check walks
// the table breadth-first from the functions f calls, so the reported
// intermediate function is the first one found in that order.
func checkRecursion(name string, f *Function, table *FunctionTable) error {
	calls := slices.Collect(Calls(f.Body...))

	if err := checkSelf(name, calls); err != nil {
		return err
	}

	if err := checkDual(name, calls, table); err != nil {
		return err
	}

	return checkCross(name, calls, table)
}

func checkSelf(name string, calls []string) error {
	if slices.Contains(calls, name) {
		return ErrSelfRecursive.
			Errorf("Self recursive function '%s'", name).
			With(slog.String("function", name))
	}

	return nil
}

// checkDual rejects a direct call to a function that directly calls back.
func checkDual(name string, calls []string, table *FunctionTable) error {
	for _, callee := range calls {
		g, ok := table.Get(callee)
		if !ok {
			continue
		}

		for back := range Calls(g.Body...) {
			if back == name {
				return ErrDualRecursive.
					Errorf("Dual recursive functions '%s' and '%s'", name, callee).
					With(slog.String("function", name), slog.String("callee", callee))
			}
		}
	}

	return nil
}

// checkCross rejects any chain of calls through the table that leads back to
// name. Functions absent from the table end their branch of the search.
func checkCross(name string, calls []string, table *FunctionTable) error {
	queue := make([]string, 0, len(calls))
	queued := make(map[string]struct{}, len(calls))

	for _, c := range calls {
		if c == name {
			continue
		}

		queue = append(queue, c)
		queued[c] = struct{}{}
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		g, ok := table.Get(next)
		if !ok {
			continue
		}

		for c := range Calls(g.Body...) {
			if c == name {
				return ErrCrossRecursive.
					Errorf("Cross recursive functions '%s' and '%s'", name, next).
					With(slog.String("function", name), slog.String("via", next))
			}

			if _, seen := queued[c]; !seen {
				queued[c] = struct{}{}
				queue = append(queue, c)
			}
		}
	}

	return nil
}
