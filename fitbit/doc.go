// Package fitbit provides a Go client for the Fitbit Web API.
//
// The package is split in three layers: a TokenManager that runs the OAuth2
// authorization-code and refresh-token exchanges and owns the resulting
// Session, a Client that dispatches authenticated requests, and thin endpoint
// services (Activity, Body, Devices, Food, Friends, HeartRate, Sleep,
// Subscriptions, User) that translate typed arguments into requests.
//
// # Quick Start
//
//	tokens, err := fitbit.NewTokenManager(
//	    fitbit.NewCredentials(clientID, clientSecret, "http://localhost"),
//	)
//	fmt.Println("Visit:", tokens.AuthorizationURL())
//	_, err = tokens.ExchangeAuthorizationCode(ctx, code)
//
//	client := fitbit.NewClient(tokens)
//	resp, err := client.User.Profile(ctx)
//
// # Status codes
//
// Resource calls do not turn HTTP failures into errors. Inspect
// Response.StatusCode, or call Response.Err to get an *UpstreamError:
//
//	resp, err := client.Activity.Summary(ctx, "2021-08-11")
//	if err != nil {
//	    return err // no session, transport failure or malformed JSON
//	}
//	if err := resp.Err(); err != nil {
//	    return err // non-2xx from the API
//	}
//
// Token exchanges are different: a rejected exchange returns an
// *AuthenticationError and leaves the current session untouched.
//
// # Refreshing
//
// The client never refreshes on its own. Call TokenManager.ExchangeRefreshToken
// when a call comes back 401; subsequent calls use the new access token.
//
// # Notifications
//
// Use ParseNotifications to validate and decode subscriber notifications:
//
//	notes, err := fitbit.ParseNotifications(r, clientSecret)
package fitbit
