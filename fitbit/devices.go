package fitbit

import "context"

// DevicesService handles paired devices and tracker alarms.
type DevicesService struct {
	service
}

// AlarmOptions configures a tracker alarm. Snooze settings are only sent
// when updating an alarm.
type AlarmOptions struct {
	Time      string `form:"time"` // HH:mm+offset, e.g. 07:15-08:00
	Enabled   bool   `form:"enabled"`
	Recurring bool   `form:"recurring"`

	// WeekDays is a comma separated list such as "MONDAY,TUESDAY".
	WeekDays string `form:"weekDays"`

	SnoozeLength int `form:"snoozeLength,omitempty"`
	SnoozeCount  int `form:"snoozeCount,omitempty"`
}

// List returns the devices paired to the user's account.
func (s *DevicesService) List(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/devices.json")
}

// Alarms returns the alarms set on a tracker.
func (s *DevicesService) Alarms(ctx context.Context, trackerID int64) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/devices/tracker/%d/alarms.json", trackerID)
}

// AddAlarm creates an alarm on a tracker.
func (s *DevicesService) AddAlarm(ctx context.Context, trackerID int64, opts AlarmOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/devices/tracker/%d/alarms.json", trackerID)
}

// UpdateAlarm replaces the settings of an existing alarm.
func (s *DevicesService) UpdateAlarm(ctx context.Context, trackerID, alarmID int64, opts AlarmOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/devices/tracker/%d/alarms/%d.json", trackerID, alarmID)
}

// DeleteAlarm removes an alarm. The API answers with an empty body.
func (s *DevicesService) DeleteAlarm(ctx context.Context, trackerID, alarmID int64) (*Response, error) {
	return s.userDelete(ctx, v1, false, "/devices/tracker/%d/alarms/%d.json", trackerID, alarmID)
}
