package fitbit

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// ActivityService handles communication with the activity related methods.
//
// Fitbit API docs: https://dev.fitbit.com/build/reference/web-api/activity/
type ActivityService struct {
	service
}

// LogActivityOptions are the parameters for logging an activity. Set exactly
// one of ActivityID (catalog activity) or ActivityName (custom activity).
type LogActivityOptions struct {
	ActivityID     int     `form:"activityId,omitempty"`
	ActivityName   string  `form:"activityName,omitempty"`
	ManualCalories int     `form:"manualCalories,omitempty"`
	StartTime      string  `form:"startTime"`
	DurationMillis int64   `form:"durationMillis"`
	Date           string  `form:"date"`
	Distance       float64 `form:"distance,omitempty"`
	DistanceUnit   string  `form:"distanceUnit,omitempty"`
}

// ActivityGoalOptions updates one daily or weekly activity goal.
type ActivityGoalOptions struct {
	// Type is one of activeMinutes, caloriesOut, distance, floors or steps.
	Type  string `form:"type"`
	Value string `form:"value"`
}

// IntradayOptions selects the window of an intraday time series.
type IntradayOptions struct {
	// EndOrPeriod is an end date (yyyy-MM-dd) or "1d".
	EndOrPeriod string

	// DetailLevel is "1sec", "1min" or "15min" depending on the resource.
	DetailLevel string

	// StartTime and EndTime (HH:mm) narrow the window; both are required for
	// either to apply.
	StartTime string
	EndTime   string
}

type tcxQuery struct {
	IncludePartialTCX bool `form:"includePartialTCX"`
}

// Types returns the tree of all public activities plus the user's custom ones.
func (s *ActivityService) Types(ctx context.Context) (*Response, error) {
	return s.get(ctx, "/1/activities.json", nil)
}

// Type returns the detail of one catalog activity.
func (s *ActivityService) Type(ctx context.Context, activityID int) (*Response, error) {
	return s.get(ctx, "/1/activities/"+strconv.Itoa(activityID)+".json", nil)
}

// LifetimeStats returns the user's lifetime activity totals and bests.
func (s *ActivityService) LifetimeStats(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities.json")
}

// Summary returns the activity summary and log entries for a day (yyyy-MM-dd).
func (s *ActivityService) Summary(ctx context.Context, date string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/date/%s.json", date)
}

// LogList returns activity log entries before or after a date.
func (s *ActivityService) LogList(ctx context.Context, opts ListOptions) (*Response, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return s.userGet(ctx, v1, opts, "/activities/list.json")
}

// NextLogList fetches the page after a LogList response.
func (s *ActivityService) NextLogList(ctx context.Context, prev *Response) (*Response, error) {
	opts, err := nextListOptions(prev)
	if err != nil {
		return nil, err
	}
	return s.LogList(ctx, opts)
}

// Log creates an activity log entry.
func (s *ActivityService) Log(ctx context.Context, opts LogActivityOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/activities.json")
}

// DeleteLog deletes an activity log entry.
func (s *ActivityService) DeleteLog(ctx context.Context, logID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/activities/%d.json", logID)
}

// TCX returns the TCX (XML) export of a logged exercise. The body is
// returned as text in Response.Text.
func (s *ActivityService) TCX(ctx context.Context, logID int64, includePartial bool) (*Response, error) {
	path, err := s.userPath(v1, "/activities/%d.tcx", logID)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, http.MethodGet, path, tcxQuery{IncludePartialTCX: includePartial}, nil, false)
}

// Frequent returns the user's frequent activities.
func (s *ActivityService) Frequent(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/frequent.json")
}

// Recent returns the user's recently logged activity types.
func (s *ActivityService) Recent(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/recent.json")
}

// Favorites returns the user's favorite activities.
func (s *ActivityService) Favorites(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/favorite.json")
}

// AddFavorite adds an activity to the user's favorites.
func (s *ActivityService) AddFavorite(ctx context.Context, activityID int) (*Response, error) {
	return s.userPost(ctx, v1, nil, "/activities/favorite/%d.json", activityID)
}

// DeleteFavorite removes an activity from the user's favorites. The API
// answers with an empty body.
func (s *ActivityService) DeleteFavorite(ctx context.Context, activityID int) (*Response, error) {
	return s.userDelete(ctx, v1, false, "/activities/favorite/%d.json", activityID)
}

// Goals returns the "daily" or "weekly" activity goals.
func (s *ActivityService) Goals(ctx context.Context, period string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/goals/%s.json", period)
}

// UpdateGoals updates a "daily" or "weekly" activity goal.
func (s *ActivityService) UpdateGoals(ctx context.Context, period string, opts ActivityGoalOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/activities/goals/%s.json", period)
}

// Intraday returns the intraday series of resource (calories, steps,
// distance, floors or elevation) starting at baseDate.
func (s *ActivityService) Intraday(ctx context.Context, resource, baseDate string, opts IntradayOptions) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/activities/%s/date/%s/%s/%s%s.json",
		resource, baseDate, opts.EndOrPeriod, opts.DetailLevel, timeRange(opts.StartTime, opts.EndTime))
}

// TimeSeries returns daily values of resource between baseDate and
// endOrPeriod (a date or one of 1d, 7d, 30d, 1w, 1m, 3m, 6m, 1y, max).
// trackerOnly restricts the series to tracker-recorded data.
func (s *ActivityService) TimeSeries(ctx context.Context, resource, baseDate, endOrPeriod string, trackerOnly bool) (*Response, error) {
	if trackerOnly {
		resource = "tracker/" + strings.TrimPrefix(resource, "/")
	}
	return s.userGet(ctx, v1, nil, "/activities/%s/date/%s/%s.json", resource, baseDate, endOrPeriod)
}
