// Package evidence stores dispatch evidence images on the local filesystem.
package evidence

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/google/uuid"
)

// FSStore writes each image to <root>/<dispatch>/<stage>/<uuid><ext>. The
// reference it returns is that path relative to root, with forward slashes.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.NewValueIsRequiredError("evidence dir")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create evidence dir: %w", err)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Store(ctx context.Context, upload ports.EvidenceUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(upload.Image) == 0 {
		return "", errs.NewValueIsRequiredError("image content")
	}
	if err := upload.Stage.Validate(); err != nil {
		return "", err
	}

	ref := path.Join(upload.DispatchID.String(), string(upload.Stage), uuid.NewString()+extension(upload))
	full := filepath.Join(s.root, filepath.FromSlash(ref))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create evidence folder: %w", err)
	}

	// write to a temp name first so a half-written file is never referenced
	tmp := full + ".part"
	if err := os.WriteFile(tmp, upload.Image, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write evidence: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write evidence: %w", err)
	}

	return ref, nil
}

// Open returns the path of a stored reference. References that escape the
// root are rejected.
func (s *FSStore) Open(ref string) (string, error) {
	clean := path.Clean("/" + ref)
	if clean == "/" || strings.Contains(ref, "..") {
		return "", errs.NewValueIsInvalidError("evidence reference")
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", errs.NewObjectNotFoundError("evidence", ref)
		}
		return "", err
	}
	return full, nil
}

func extension(upload ports.EvidenceUpload) string {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if ext != "" && len(ext) <= 6 {
		return ext
	}
	switch upload.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
