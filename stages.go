package presetreq

import (
	"context"
	"fmt"

	"github.com/joy-dx/presetreq/dto"
)

// composeStages orders a parent's stages around the child's own. Under
// MergePost the parent runs first; under MergePre the child does.
func composeStages[S any](parent, own []S, strategy dto.MergeStrategy) []S {
	out := make([]S, 0, len(parent)+len(own))
	if strategy == dto.MergePre {
		out = append(out, own...)
		return append(out, parent...)
	}
	out = append(out, parent...)
	return append(out, own...)
}

func runTransforms(r *Request, stages []TransformFunc, v any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrTransform, rec)
		}
	}()
	for _, stage := range stages {
		v, err = stage(r, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransform, err)
		}
	}
	return v, nil
}

func runPrepares(ctx context.Context, r *Request, stages []PrepareFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPrepare, rec)
		}
	}()
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrPrepare, err)
		}
		if err := stage(ctx, r); err != nil {
			return fmt.Errorf("%w: %w", ErrPrepare, err)
		}
	}
	return nil
}
