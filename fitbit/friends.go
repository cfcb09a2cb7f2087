package fitbit

import "context"

// FriendsService handles friends, leaderboard and invitation endpoints.
// These live under API version 1.1.
type FriendsService struct {
	service
}

// InviteOptions invites a user by encoded id or by email. Set exactly one.
type InviteOptions struct {
	InvitedUserID    string `form:"invitedUserId,omitempty"`
	InvitedUserEmail string `form:"invitedUserEmail,omitempty"`
}

type invitationReply struct {
	Accept bool `form:"accept"`
}

// List returns the user's friends.
func (s *FriendsService) List(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v11, nil, "/friends.json")
}

// Leaderboard returns the friends step leaderboard.
func (s *FriendsService) Leaderboard(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v11, nil, "/leaderboard/friends.json")
}

// Invitations returns pending friend invitations.
func (s *FriendsService) Invitations(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v11, nil, "/friends/invitations.json")
}

// Invite sends a friend invitation.
func (s *FriendsService) Invite(ctx context.Context, opts InviteOptions) (*Response, error) {
	return s.userPost(ctx, v11, opts, "/friends/invitations")
}

// RespondToInvitation accepts or rejects an invitation from fromUserID.
func (s *FriendsService) RespondToInvitation(ctx context.Context, fromUserID string, accept bool) (*Response, error) {
	return s.userPost(ctx, v11, invitationReply{Accept: accept}, "/friends/invitations/%s", fromUserID)
}
