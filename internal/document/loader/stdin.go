package loader

import (
	"context"
	"errors"
	"io"
)

func loadStdin(ctx context.Context, r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("document loader: stdin is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
