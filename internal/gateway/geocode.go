package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultGeocodeLimit = 5
	maxGeocodeLimit     = 40
)

var ErrInvalidJSON = errors.New("upstream returned invalid json")

// 上流が2xx以外を返したとき
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status=%d body=%s", e.Status, e.Body)
}

// GeocodeClient はNominatim互換のジオコーディングAPIを呼ぶ。
// 結果は加工せずに返す。リトライはしない。
type GeocodeClient struct {
	doer      Doer
	baseURL   string
	userAgent string
	limit     int
}

func NewGeocodeClient(doer Doer, baseURL, userAgent string, limit int) *GeocodeClient {
	if limit <= 0 {
		limit = DefaultGeocodeLimit
	}
	if limit > maxGeocodeLimit {
		limit = maxGeocodeLimit
	}
	return &GeocodeClient{
		doer:      doer,
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userAgent: userAgent,
		limit:     limit,
	}
}

// 住所文字列から候補一覧（JSON配列）を取得
func (c *GeocodeClient) Search(ctx context.Context, query string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("q", query)

	return c.get(ctx, c.baseURL+"/search?"+q.Encode())
}

// 緯度経度から住所（JSONオブジェクト）を取得
func (c *GeocodeClient) Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	return c.get(ctx, c.baseURL+"/reverse?"+q.Encode())
}

func (c *GeocodeClient) get(ctx context.Context, target string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	// プロバイダの利用規約でUser-Agentが必須
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{Status: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	return json.RawMessage(body), nil
}
