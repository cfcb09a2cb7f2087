package fitbit

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestUserService_GetProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/1/user/U1/profile.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"user": {
				"encodedId": "U1",
				"displayName": "Jo",
				"fullName": "Jo Doe",
				"dateOfBirth": "1990-01-01",
				"gender": "NA",
				"height": 180.3,
				"weight": 72.5,
				"timezone": "Europe/Berlin",
				"offsetFromUTCMillis": 7200000,
				"memberSince": "2015-06-01",
				"locale": "en_US",
				"strideLengthRunning": 105.2,
				"strideLengthWalking": 74.9
			}
		}`))
	})

	profile, err := client.User.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.EncodedID != "U1" {
		t.Errorf("expected encodedId U1, got %s", profile.EncodedID)
	}
	if profile.DisplayName != "Jo" {
		t.Errorf("expected display name Jo, got %s", profile.DisplayName)
	}
	if profile.Height != 180.3 || profile.Weight != 72.5 {
		t.Errorf("unexpected height/weight %v/%v", profile.Height, profile.Weight)
	}
	if profile.OffsetFromUTC != 7200000 {
		t.Errorf("expected offset 7200000, got %d", profile.OffsetFromUTC)
	}
}

func TestUserService_GetProfile_Upstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"errorType":"expired_token"}]}`))
	})

	_, err := client.User.GetProfile(context.Background())

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", upstream.StatusCode)
	}
}
