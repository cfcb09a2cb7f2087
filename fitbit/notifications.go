package fitbit

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxNotificationBodySize bounds how much of a notification body is read.
const maxNotificationBodySize = 1 << 20

// Notification is one entry of a subscriber notification. Fitbit only says
// what changed; fetch the data with the matching service.
type Notification struct {
	CollectionType string `json:"collectionType"`
	Date           string `json:"date"`
	OwnerID        string `json:"ownerId"`
	OwnerType      string `json:"ownerType"`
	SubscriptionID string `json:"subscriptionId"`
}

// ParseNotifications reads and verifies a subscriber notification. The
// X-Fitbit-Signature header must carry base64(HMAC-SHA1(body)) keyed with
// clientSecret + "&". Do not consume r.Body before calling this.
func ParseNotifications(r *http.Request, clientSecret string) ([]Notification, error) {
	if r.Method != http.MethodPost {
		return nil, errors.New("notification must be a POST request")
	}

	headerSig := r.Header.Get("X-Fitbit-Signature")
	if headerSig == "" {
		return nil, errors.New("missing X-Fitbit-Signature header")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read notification body: %w", err)
	}

	if !hmac.Equal([]byte(headerSig), []byte(signNotification(body, clientSecret))) {
		return nil, errors.New("invalid notification signature")
	}

	var notifications []Notification
	if err := json.Unmarshal(body, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notification json: %w", err)
	}

	return notifications, nil
}

func signNotification(body []byte, clientSecret string) string {
	mac := hmac.New(sha1.New, []byte(clientSecret+"&"))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySubscriber answers Fitbit's subscriber verification probe: it reports
// whether the request's "verify" query parameter equals code. Respond 204 when
// it does and 404 otherwise.
func VerifySubscriber(r *http.Request, code string) bool {
	got := r.URL.Query().Get("verify")
	if got == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(code)) == 1
}
