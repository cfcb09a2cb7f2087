package fitbit

import "context"

// Body log resources.
const (
	BodyFat    = "fat"
	BodyWeight = "weight"
)

// BodyService handles body weight, body fat and BMI endpoints.
type BodyService struct {
	service
}

// BodyLogOptions logs one weight or fat measurement. Value is sent under the
// resource name ("weight" or "fat").
type BodyLogOptions struct {
	Value float64
	Date  string // yyyy-MM-dd
	Time  string // HH:mm:ss, optional
}

type bodyLogForm struct {
	Weight float64 `form:"weight,omitempty"`
	Fat    float64 `form:"fat,omitempty"`
	Date   string  `form:"date"`
	Time   string  `form:"time,omitempty"`
}

// WeightGoalOptions sets the weight goal.
type WeightGoalOptions struct {
	StartDate   string  `form:"startDate"`
	StartWeight float64 `form:"startWeight"`
	Weight      float64 `form:"weight,omitempty"`
}

type fatGoalForm struct {
	Fat float64 `form:"fat"`
}

// Logs returns the "weight" or "fat" log entries on baseDate, or over a
// range when endOrPeriod (a date or 1d, 7d, 1w, 1m) is not empty.
func (s *BodyService) Logs(ctx context.Context, resource, baseDate, endOrPeriod string) (*Response, error) {
	end := ""
	if endOrPeriod != "" {
		end = "/" + endOrPeriod
	}
	return s.userGet(ctx, v1, nil, "/body/log/%s/date/%s%s.json", resource, baseDate, end)
}

// Log creates a "weight" or "fat" log entry.
func (s *BodyService) Log(ctx context.Context, resource string, opts BodyLogOptions) (*Response, error) {
	body := bodyLogForm{Date: opts.Date, Time: opts.Time}
	switch resource {
	case BodyFat:
		body.Fat = opts.Value
	default:
		body.Weight = opts.Value
	}
	return s.userPost(ctx, v1, body, "/body/log/%s.json", resource)
}

// DeleteLog deletes a "weight" or "fat" log entry.
func (s *BodyService) DeleteLog(ctx context.Context, resource, logID string) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/body/log/%s/%s.json", resource, logID)
}

// Goals returns the "weight" or "fat" goal.
func (s *BodyService) Goals(ctx context.Context, resource string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/body/log/%s/goal.json", resource)
}

// UpdateFatGoal sets the body fat goal in percent.
func (s *BodyService) UpdateFatGoal(ctx context.Context, fat float64) (*Response, error) {
	return s.userPost(ctx, v1, fatGoalForm{Fat: fat}, "/body/log/fat/goal.json")
}

// UpdateWeightGoal sets the body weight goal.
func (s *BodyService) UpdateWeightGoal(ctx context.Context, opts WeightGoalOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/body/log/weight/goal.json")
}

// TimeSeries returns "bmi", "fat" or "weight" values over a range.
func (s *BodyService) TimeSeries(ctx context.Context, resource, baseDate, endOrPeriod string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/body/%s/date/%s/%s.json", resource, baseDate, endOrPeriod)
}
