package fitbit

import "context"

// SleepService handles communication with the sleep related methods.
// Sleep endpoints live under API version 1.2.
type SleepService struct {
	service
}

// LogSleepOptions creates a manual sleep entry.
type LogSleepOptions struct {
	StartTime string `form:"startTime"` // HH:mm
	Duration  int64  `form:"duration"`  // milliseconds
	Date      string `form:"date"`      // yyyy-MM-dd
}

type sleepGoalForm struct {
	MinDuration int `form:"minDuration"`
}

// ByDate returns the sleep logs, naps included, for a day.
func (s *SleepService) ByDate(ctx context.Context, date string) (*Response, error) {
	return s.userGet(ctx, v12, nil, "/sleep/date/%s.json", date)
}

// ByDateRange returns the sleep logs between two dates, inclusive.
func (s *SleepService) ByDateRange(ctx context.Context, baseDate, endDate string) (*Response, error) {
	return s.userGet(ctx, v12, nil, "/sleep/date/%s/%s.json", baseDate, endDate)
}

// List returns sleep logs before or after a date.
func (s *SleepService) List(ctx context.Context, opts ListOptions) (*Response, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return s.userGet(ctx, v12, opts, "/sleep/list.json")
}

// NextPage fetches the page after a List response.
func (s *SleepService) NextPage(ctx context.Context, prev *Response) (*Response, error) {
	opts, err := nextListOptions(prev)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, opts)
}

// Log creates a sleep log entry.
func (s *SleepService) Log(ctx context.Context, opts LogSleepOptions) (*Response, error) {
	return s.userPost(ctx, v12, opts, "/sleep.json")
}

// DeleteLog deletes a sleep log entry.
func (s *SleepService) DeleteLog(ctx context.Context, logID int64) (*Response, error) {
	return s.userDelete(ctx, v12, true, "/sleep/%d.json", logID)
}

// Goal returns the sleep goal.
func (s *SleepService) Goal(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v12, nil, "/sleep/goal.json")
}

// UpdateGoal sets the sleep goal in minutes.
func (s *SleepService) UpdateGoal(ctx context.Context, minDuration int) (*Response, error) {
	return s.userPost(ctx, v12, sleepGoalForm{MinDuration: minDuration}, "/sleep/goal.json")
}
