package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "front-desk",
		ModifiedBy: "night-audit",
	})

	assert.Equal(t, createdAt.In(timezone.GetLocation()).Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.In(timezone.GetLocation()).Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "front-desk", metadata.CreatedBy)
	assert.Equal(t, "night-audit", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			rawQuery: "page=2&limit=20&sort_by=room_number&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "room_number", SortDir: "ASC"},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			rawQuery:       "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			rawQuery: "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.rawQuery, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := dto.QueryParams{SortBy: "room_number"}
	allowed.RestrictSort("rooms", "room_number", "capacity")
	assert.Equal(t, dto.QueryParams{SortBy: "rooms.room_number", SortDir: dto.SortDirAsc}, allowed)

	injected := dto.QueryParams{SortBy: "1; DROP TABLE rooms", SortDir: dto.SortDirDesc}
	injected.RestrictSort("rooms", "room_number")
	assert.Equal(t, dto.QueryParams{}, injected)
}

func TestQueryParams_WithDefaultSort(t *testing.T) {
	params := dto.QueryParams{}
	params.WithDefaultSort("bookings.created_at", dto.SortDirDesc)
	assert.Equal(t, "bookings.created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	explicit := dto.QueryParams{SortBy: "bookings.check_in_date", SortDir: dto.SortDirAsc}
	explicit.WithDefaultSort("bookings.created_at", dto.SortDirDesc)
	assert.Equal(t, "bookings.check_in_date", explicit.SortBy)
}
