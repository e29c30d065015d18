package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/avelarde/catalog-backend/pkg/config"
	"github.com/avelarde/catalog-backend/pkg/logger"
	"github.com/google/uuid"
)

// namespace is the directory every product image lives under, both on disk
// and in the relative paths persisted on product rows.
const namespace = "products"

// Client stores product images on the local filesystem under a public root
// that the API also serves read-only.
type Client struct {
	root          string
	publicBaseURL string
	logg          *logger.Logger
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient prepares the storage root and the products namespace beneath it.
func NewClient(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Root == "" {
		return nil, errors.New("storage root is required")
	}
	if cfg.PublicBaseURL == "" {
		return nil, errors.New("storage public base URL is required")
	}

	if err := os.MkdirAll(filepath.Join(cfg.Root, namespace), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage namespace: %w", err)
	}

	client := &Client{
		root:          cfg.Root,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logg:          logg,
	}

	if logg != nil {
		logg.Info(ctx, "disk storage client initialized")
	}
	return client, nil
}

// Root returns the directory the client writes under.
func (c *Client) Root() string {
	return c.root
}

// Save writes the reader's bytes to a collision-resistant filename under the
// products namespace and returns the relative path, e.g.
// products/1714060800_9f1c...e2.jpg.
func (c *Client) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	if r == nil {
		return "", errors.New("nil reader")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uniqueName(ext)
	rel := path.Join(namespace, name)
	abs := filepath.Join(c.root, namespace, name)

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("closing image file: %w", err)
	}
	return rel, nil
}

// Delete removes the file at the relative path. A missing file is not an
// error; the caller may be cleaning up after a crashed earlier attempt.
func (c *Client) Delete(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := c.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("deleting image file: %w", err)
	}
	return nil
}

// Exists reports whether the relative path is present in the store.
func (c *Client) Exists(rel string) bool {
	abs, err := c.resolve(rel)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(abs)
	return statErr == nil
}

// PublicURL maps a stored relative path to its externally fetchable URL.
func (c *Client) PublicURL(rel string) string {
	rel = strings.TrimLeft(rel, "/")
	return c.publicBaseURL + "/" + rel
}

// Ping verifies the storage root is reachable and writable.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("storage root unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %s is not a directory", c.root)
	}
	return nil
}

// resolve joins rel under the root and rejects paths escaping it.
func (c *Client) resolve(rel string) (string, error) {
	cleaned := path.Clean(strings.TrimLeft(rel, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid storage path %q", rel)
	}
	return filepath.Join(c.root, filepath.FromSlash(cleaned)), nil
}

// uniqueName builds a time-prefixed random filename keeping the original
// extension: <unix>_<token>.<ext>.
func uniqueName(ext string) string {
	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), token)
	if ext != "" {
		name += "." + strings.ToLower(ext)
	}
	return name
}
