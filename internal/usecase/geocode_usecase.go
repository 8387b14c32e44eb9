package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const (
	msgQueryRequired    = "Query parameter is required"
	msgLatLngRequired   = "Latitude and longitude are required"
	msgLatLngNotNumber  = "Latitude and longitude must be numbers"
	msgGeocodeFailed    = "Failed to fetch geocoding data"
	msgReverseGeoFailed = "Failed to fetch reverse geocoding data"
)

type Geocoder interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error)
}

// GeocodeUsecase は住所入力補助。上流の結果をそのまま返す。
type GeocodeUsecase struct {
	geo Geocoder
	log *slog.Logger
}

func NewGeocodeUsecase(geo Geocoder, log *slog.Logger) *GeocodeUsecase {
	return &GeocodeUsecase{geo: geo, log: log}
}

func (u *GeocodeUsecase) Search(ctx context.Context, query string) (json.RawMessage, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, NewHTTPError(http.StatusBadRequest, msgQueryRequired)
	}

	out, err := u.geo.Search(ctx, q)
	if err != nil {
		//原因はサーバー側のログにだけ残す
		u.log.ErrorContext(ctx, "geocode search failed", slog.String("query", q), slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, msgGeocodeFailed)
	}
	return out, nil
}

func (u *GeocodeUsecase) Reverse(ctx context.Context, latStr, lngStr string) (json.RawMessage, error) {
	latStr = strings.TrimSpace(latStr)
	lngStr = strings.TrimSpace(lngStr)
	if latStr == "" || lngStr == "" {
		return nil, NewHTTPError(http.StatusBadRequest, msgLatLngRequired)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, NewHTTPError(http.StatusBadRequest, msgLatLngNotNumber)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, NewHTTPError(http.StatusBadRequest, msgLatLngNotNumber)
	}

	out, err := u.geo.Reverse(ctx, lat, lng)
	if err != nil {
		u.log.ErrorContext(ctx, "reverse geocode failed", slog.Float64("lat", lat), slog.Float64("lng", lng), slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, msgReverseGeoFailed)
	}
	return out, nil
}
