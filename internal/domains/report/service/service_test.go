package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func sampleBookings() []bookingModel.Booking {
	checkedIn := time.Date(2024, 1, 1, 14, 5, 0, 0, time.UTC)

	return []bookingModel.Booking{
		{
			ID:              "b1",
			RoomNumber:      101,
			CustomerName:    "Ann Lee",
			CustomerPhone:   "+1 555 0100",
			CheckInDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Status:          bookingModel.StatusCheckedIn,
			ActualCheckInAt: &checkedIn,
			TotalPrice:      decimal.NewFromInt(4000),
		},
		{
			ID:           "b2",
			RoomNumber:   201,
			CustomerName: "Bo Chan",
			CheckInDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Status:       bookingModel.StatusPending,
			TotalPrice:   decimal.RequireFromString("9100.50"),
		},
	}
}

func TestBuildBookingWorkbook(t *testing.T) {
	data, err := service.BuildBookingWorkbook(sampleBookings(), time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(service.SheetBookings)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Booking ID", rows[0][0])
	assert.Equal(t, []string{"b1", "101", "Ann Lee", "+1 555 0100", "", "2024-01-01", "2024-01-03", "2", "checked_in", "4000", "2024-01-01 14:05"}, rows[1])
	assert.Equal(t, "3", rows[2][7])
	assert.Empty(t, rows[3])
	assert.Equal(t, "Generated 2024-01-06 09:00", rows[4][0])
	assert.Equal(t, "13100.5", rows[4][9])
}

func TestBuildBookingWorkbookEmpty(t *testing.T) {
	data, err := service.BuildBookingWorkbook(nil, time.Now())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer file.Close()

	assert.Equal(t, []string{service.SheetBookings}, file.GetSheetList())
}

func TestReportService_Bookings(t *testing.T) {
	req := dto.BookingReportRequest{ListFilter: bookingDto.ListFilter{Status: bookingModel.StatusCheckedIn}}

	t.Run("uploads the workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		storage := s3Mocks.NewMockS3(ctrl)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), req.ToFilterGroup()).Return(sampleBookings(), nil)
		storage.EXPECT().UploadFileBytes(gomock.Any(), "reports", gomock.Any(), constant.ContentTypeXLSX, gomock.Any()).DoAndReturn(
			func(_ context.Context, _, fileName, _ string, data []byte) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".xlsx"))
				assert.NotEmpty(t, data)

				return "https://files.example.com/reports/" + fileName, nil
			})

		svc := service.New(repo, storage, &config.Config{}, mocks.NewOtel())

		res, err := svc.Bookings(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Rows)
		assert.True(t, strings.HasSuffix(res.URL, res.FileName))
	})

	t.Run("upload failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		storage := s3Mocks.NewMockS3(ctrl)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket gone"))

		_, err := service.New(repo, storage, &config.Config{}, mocks.NewOtel()).Bookings(context.Background(), req)
		assert.Error(t, err)
	})
}
