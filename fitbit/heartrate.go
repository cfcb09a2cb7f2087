package fitbit

import "context"

// HeartRateService handles heart rate time series.
type HeartRateService struct {
	service
}

// Intraday returns the heart rate intraday series. Intraday data is only
// available for the authorized user.
func (s *HeartRateService) Intraday(ctx context.Context, baseDate string, opts IntradayOptions) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/heart/date/%s/%s/%s%s.json",
		baseDate, opts.EndOrPeriod, opts.DetailLevel, timeRange(opts.StartTime, opts.EndTime))
}

// TimeSeries returns daily heart rate zones and resting heart rate.
func (s *HeartRateService) TimeSeries(ctx context.Context, baseDate, endOrPeriod string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/heart/date/%s/%s.json", baseDate, endOrPeriod)
}
