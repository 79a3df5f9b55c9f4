package domain

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstream        = errors.New("upstream lookup failed")

	ErrExportUnavailable = errors.New("report export is not configured")
)
