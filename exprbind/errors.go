package exprbind

import (
	"errors"
	"fmt"
)

// EvalError captures the expression text alongside the originating error.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("exprbind: expr=%q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvalError(expr string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		return err
	}

	return &EvalError{Expr: expr, Err: err}
}
