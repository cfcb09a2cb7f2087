package fitbit

import "context"

// Collections a subscription can be limited to. An empty collection
// subscribes to all of them.
const (
	CollectionActivities = "activities"
	CollectionBody       = "body"
	CollectionFoods      = "foods"
	CollectionSleep      = "sleep"
	CollectionUserRevoke = "userRevokedAccess"
)

// SubscriptionsService manages subscriptions to change notifications.
type SubscriptionsService struct {
	service
}

func collectionPrefix(collection string) string {
	if collection == "" {
		return ""
	}
	return "/" + collection
}

// List returns the application's subscriptions for the user, optionally
// limited to one collection.
func (s *SubscriptionsService) List(ctx context.Context, collection string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "%s/apiSubscriptions.json", collectionPrefix(collection))
}

// Add creates a subscription with the given id.
func (s *SubscriptionsService) Add(ctx context.Context, collection, subscriptionID string) (*Response, error) {
	return s.userPost(ctx, v1, nil, "%s/apiSubscriptions/%s.json", collectionPrefix(collection), subscriptionID)
}

// Delete removes a subscription.
func (s *SubscriptionsService) Delete(ctx context.Context, collection, subscriptionID string) (*Response, error) {
	return s.userDelete(ctx, v1, true, "%s/apiSubscriptions/%s.json", collectionPrefix(collection), subscriptionID)
}
