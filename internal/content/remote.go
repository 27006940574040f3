package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vytor/xo101/internal/logger"
)

const maxRemoteBytes = 8 << 20

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// extension returns the lower-cased file extension of a path or URL.
func extension(source string) string {
	if isRemote(source) {
		if u, err := url.Parse(source); err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(filepath.Ext(source))
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("content").WithField("url", source)
	log.Debug("fetching content")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch content: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("content response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("content request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxRemoteBytes {
		return nil, fmt.Errorf("content larger than %d bytes", maxRemoteBytes)
	}
	return data, nil
}
