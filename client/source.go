package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrUnsupportedSource = errors.New("unsupported document source")

// Source fetches the raw bytes of a statement named by ref.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// LocalSource reads statements from the local filesystem.
type LocalSource struct{}

func (LocalSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// MultiSource routes s3:// references to S3 and everything else to Local.
// S3 may be nil when no bucket access is configured.
type MultiSource struct {
	Local Source
	S3    Source
}

func (m MultiSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if IsS3Ref(ref) {
		if m.S3 == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, ref)
		}
		return m.S3.Fetch(ctx, ref)
	}
	if strings.Contains(ref, "://") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, ref)
	}
	local := m.Local
	if local == nil {
		local = LocalSource{}
	}
	return local.Fetch(ctx, ref)
}

// DisplayName is the file name recorded for a reference.
func DisplayName(ref string) string {
	if IsS3Ref(ref) {
		return path.Base(ref)
	}
	return filepath.Base(ref)
}
