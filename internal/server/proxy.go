package server

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// allowedImageHosts is the fixed set of hostnames the proxy will fetch from.
var allowedImageHosts = map[string]bool{
	"img.shields.io":                 true,
	"github-readme-stats.vercel.app": true,
	"streak-stats.demolab.com":       true,
	"avatars.githubusercontent.com":  true,
}

// placeholderHosts are the chart services whose failures degrade to a
// placeholder image instead of an error, so a rate-limited chart host does
// not break an otherwise rendered README preview.
var placeholderHosts = map[string]bool{
	"github-readme-stats.vercel.app": true,
	"streak-stats.demolab.com":       true,
}

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="120" viewBox="0 0 400 120">` +
	`<rect width="400" height="120" rx="6" fill="#f6f8fa" stroke="#d0d7de"/>` +
	`<text x="200" y="66" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#57606a">chart unavailable</text>` +
	`</svg>`

// maxProxyBytes caps how much of an upstream image is relayed.
const maxProxyBytes = 5 << 20

type imageProxy struct {
	client *http.Client
	logger *log.Logger
}

func newImageProxy(logger *log.Logger) *imageProxy {
	return &imageProxy{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// handle relays an allowlisted image URL byte-for-byte, preserving the
// upstream content type. Failures on the chart hosts return the placeholder
// SVG with a 200 so embedding clients still render something.
func (p *imageProxy) handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	target, err := url.Parse(raw)
	if err != nil || !target.IsAbs() || (target.Scheme != "http" && target.Scheme != "https") {
		http.Error(w, "invalid image url", http.StatusBadRequest)
		return
	}
	if !allowedImageHosts[target.Hostname()] {
		http.Error(w, "image host not allowed", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		http.Error(w, "invalid image url", http.StatusBadRequest)
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.fail(w, target, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		p.fail(w, target, nil)
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = io.Copy(w, io.LimitReader(resp.Body, maxProxyBytes))
}

func (p *imageProxy) fail(w http.ResponseWriter, target *url.URL, err error) {
	if err != nil {
		p.logger.Debug("image proxy fetch failed", "host", target.Hostname(), "err", err)
	}
	if placeholderHosts[target.Hostname()] {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = io.WriteString(w, placeholderSVG)
		return
	}
	http.Error(w, "image fetch failed", http.StatusBadGateway)
}
