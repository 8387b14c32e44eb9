package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGeocodeUsecase_Search_QueryRequired(t *testing.T) {
	geo := new(MockGeocoder)
	uc := NewGeocodeUsecase(geo, discardLogger())

	_, err := uc.Search(context.Background(), "   ")
	assertHTTPError(t, err, http.StatusBadRequest, "Query parameter is required")

	geo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestGeocodeUsecase_Search_Success(t *testing.T) {
	geo := new(MockGeocoder)
	geo.On("Search", mock.Anything, "Shibuya").Return(json.RawMessage(`[{"lat":"1"}]`), nil)

	uc := NewGeocodeUsecase(geo, discardLogger())

	out, err := uc.Search(context.Background(), " Shibuya ")
	assert.NoError(t, err)
	assert.Equal(t, `[{"lat":"1"}]`, string(out))

	geo.AssertExpectations(t)
}

func TestGeocodeUsecase_Search_UpstreamFailure(t *testing.T) {
	geo := new(MockGeocoder)
	geo.On("Search", mock.Anything, "x").Return(nil, errors.New("upstream status=503"))

	uc := NewGeocodeUsecase(geo, discardLogger())

	_, err := uc.Search(context.Background(), "x")
	assertHTTPError(t, err, http.StatusInternalServerError, "Failed to fetch geocoding data")
}

func TestGeocodeUsecase_Reverse_Validation(t *testing.T) {
	uc := NewGeocodeUsecase(new(MockGeocoder), discardLogger())

	cases := []struct {
		name     string
		lat, lng string
		message  string
	}{
		{"missing lat", "", "139.7", "Latitude and longitude are required"},
		{"missing lng", "35.6", "", "Latitude and longitude are required"},
		{"not a number", "abc", "139.7", "Latitude and longitude must be numbers"},
		{"out of range", "91", "139.7", "Latitude and longitude must be numbers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Reverse(context.Background(), tc.lat, tc.lng)
			assertHTTPError(t, err, http.StatusBadRequest, tc.message)
		})
	}
}

func TestGeocodeUsecase_Reverse_Success(t *testing.T) {
	geo := new(MockGeocoder)
	geo.On("Reverse", mock.Anything, 35.6595, 139.7005).Return(json.RawMessage(`{"display_name":"Shibuya"}`), nil)

	uc := NewGeocodeUsecase(geo, discardLogger())

	out, err := uc.Reverse(context.Background(), "35.6595", "139.7005")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"display_name":"Shibuya"}`, string(out))
}

func TestGeocodeUsecase_Reverse_UpstreamFailure(t *testing.T) {
	geo := new(MockGeocoder)
	geo.On("Reverse", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	uc := NewGeocodeUsecase(geo, discardLogger())

	_, err := uc.Reverse(context.Background(), "1", "2")
	assertHTTPError(t, err, http.StatusInternalServerError, "Failed to fetch reverse geocoding data")
}
