package dto

import (
	bookingDto "hotel/internal/domains/booking/model/dto"
)

// BookingReportRequest selects the bookings that go into an export. All filters are optional.
type BookingReportRequest struct {
	bookingDto.ListFilter
}

type ReportResponse struct {
	FileName    string `json:"file_name"`
	URL         string `json:"url"`
	Rows        int    `json:"rows"`
	GeneratedAt string `json:"generated_at"`
}
