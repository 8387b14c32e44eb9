package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// サービスキーを載せるヘッダー名
const APIKeyHeader = "apikey"

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Authorization, Content-Type, apikey"
)

// 転送先（リモートデータストア）
type Upstream struct {
	BaseURL     string
	APIKey      string
	AllowOrigin string
}

type ForwardRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type ForwardResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// CORSHeaders はプロキシのレスポンスに必ず付ける3つのヘッダー。
func CORSHeaders(allowOrigin string) http.Header {
	h := http.Header{}
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	return h
}

// TargetURL は base + "/" + path (+ "?" + rawQuery) を組み立てる。
func TargetURL(baseURL, path, rawQuery string) string {
	target := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// GET/HEADはbodyを送らない
func hasBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead:
		return false
	default:
		return true
	}
}

// Forward はリクエストをそのまま上流に転送し、ステータスとbodyを加工せずに返す。
// ネットワークエラーのときだけerrorを返す（上流の4xx/5xxはそのまま中継）。
func Forward(ctx context.Context, doer Doer, up Upstream, in ForwardRequest) (ForwardResponse, error) {
	target := TargetURL(up.BaseURL, in.Path, in.RawQuery)
	u, err := url.Parse(target)
	if err != nil {
		return ForwardResponse{}, fmt.Errorf("invalid upstream url: %w", err)
	}

	var body io.Reader
	if hasBody(in.Method) {
		body = bytes.NewReader(in.Body)
	}

	req, err := http.NewRequestWithContext(ctx, in.Method, u.String(), body)
	if err != nil {
		return ForwardResponse{}, err
	}

	if in.Header != nil {
		req.Header = in.Header.Clone()
	}
	// 圧縮はTransportに任せる（クライアントのAccept-Encodingを流すと生のgzipが返る）
	req.Header.Del("Accept-Encoding")
	req.Header.Del("Content-Length")
	req.Header.Del("Host")
	// セッションCookieは外部に出さない
	req.Header.Del("Cookie")
	req.Host = u.Host
	req.Header.Set(APIKeyHeader, up.APIKey)

	res, err := doer.Do(req)
	if err != nil {
		return ForwardResponse{}, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return ForwardResponse{}, err
	}

	h := CORSHeaders(up.AllowOrigin)
	if ct := res.Header.Get("Content-Type"); ct != "" {
		h.Set("Content-Type", ct)
	}

	return ForwardResponse{
		Status: res.StatusCode,
		Header: h,
		Body:   b,
	}, nil
}
