package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/report/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	reportDirectory = "reports"
	fileTimeLayout  = "20060102-150405"
)

type Report interface {
	Bookings(ctx context.Context, req dto.BookingReportRequest) (dto.ReportResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepository.Booking
	storage     s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepository.Booking, storage s3.S3, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		storage:     storage,
		cfg:         cfg,
		otel:        otel,
	}
}

// Bookings exports the matching bookings, newest first, as a spreadsheet in object storage.
func (s *serviceImpl) Bookings(ctx context.Context, req dto.BookingReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, req.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	now := timezone.Now()

	data, err := BuildBookingWorkbook(bookings, now)
	if err != nil {
		return res, fmt.Errorf("failed to build booking report: %w", err)
	}

	fileName := fmt.Sprintf("bookings-%s.xlsx", now.Format(fileTimeLayout))

	url, err := s.storage.UploadFileBytes(ctx, reportDirectory, fileName, constant.ContentTypeXLSX, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload booking report")

		return res, fmt.Errorf("failed to upload booking report: %w", err)
	}

	log.Info().Str("file", fileName).Int("rows", len(bookings)).Msg("booking report generated")

	return dto.ReportResponse{
		FileName:    fileName,
		URL:         url,
		Rows:        len(bookings),
		GeneratedAt: now.Format(constant.DateFormat),
	}, nil
}
