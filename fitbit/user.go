package fitbit

import "context"

// Profile is the subset of the user profile most callers need. Decode a
// UserService.Profile response into ProfileEnvelope to obtain it.
type Profile struct {
	EncodedID     string  `json:"encodedId"`
	DisplayName   string  `json:"displayName"`
	FullName      string  `json:"fullName"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Timezone      string  `json:"timezone"`
	OffsetFromUTC int64   `json:"offsetFromUTCMillis"`
	MemberSince   string  `json:"memberSince"`
	Locale        string  `json:"locale"`
	StrideRunning float64 `json:"strideLengthRunning"`
	StrideWalking float64 `json:"strideLengthWalking"`
}

// ProfileEnvelope wraps Profile the way the API returns it.
type ProfileEnvelope struct {
	User Profile `json:"user"`
}

// ProfileUpdate holds the profile fields that can be changed. Empty fields
// are left untouched.
type ProfileUpdate struct {
	FullName            string  `form:"fullname,omitempty"`
	DisplayName         string  `form:"displayName,omitempty"`
	Gender              string  `form:"gender,omitempty"`
	Birthday            string  `form:"birthday,omitempty"`
	Height              float64 `form:"height,omitempty"`
	AboutMe             string  `form:"aboutMe,omitempty"`
	Country             string  `form:"country,omitempty"`
	State               string  `form:"state,omitempty"`
	City                string  `form:"city,omitempty"`
	StrideLengthWalking float64 `form:"strideLengthWalking,omitempty"`
	StrideLengthRunning float64 `form:"strideLengthRunning,omitempty"`
	WeightUnit          string  `form:"weightUnit,omitempty"`
	HeightUnit          string  `form:"heightUnit,omitempty"`
	WaterUnit           string  `form:"waterUnit,omitempty"`
	GlucoseUnit         string  `form:"glucoseUnit,omitempty"`
	Timezone            string  `form:"timezone,omitempty"`
	FoodsLocale         string  `form:"foodsLocale,omitempty"`
	Locale              string  `form:"locale,omitempty"`
	LocaleLang          string  `form:"localeLang,omitempty"`
	LocaleCountry       string  `form:"localeCountry,omitempty"`
	StartDayOfWeek      string  `form:"startDayOfWeek,omitempty"`
}

// UserService handles communication with the user related methods.
type UserService struct {
	service
}

// Profile fetches the user's profile.
func (s *UserService) Profile(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/profile.json")
}

// UpdateProfile changes the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Response, error) {
	return s.userPost(ctx, v1, update, "/profile.json")
}

// Badges returns the badges the user has earned.
func (s *UserService) Badges(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/badges.json")
}

// GetProfile fetches the profile and decodes it. A non-2xx answer is
// returned as an *UpstreamError.
func (s *UserService) GetProfile(ctx context.Context) (*Profile, error) {
	resp, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var envelope ProfileEnvelope
	if err := resp.Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}
