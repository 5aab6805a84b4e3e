package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

const DefaultRecommendationLimit = 10

// ConnectionService runs the connection request flow, follows and blocks.
type ConnectionService struct {
	stores   Stores
	notifier *Notifier
	activity *ActivityLog
	now      Clock
}

func NewConnectionService(stores Stores, notifier *Notifier, activity *ActivityLog) *ConnectionService {
	return &ConnectionService{stores: stores, notifier: notifier, activity: activity, now: time.Now}
}

// activeUser loads a member that can be interacted with.
func (s *ConnectionService) activeUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.stores.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User")
	}
	if !u.IsActive {
		return nil, notFound("User not found")
	}
	return u, nil
}

// SendRequest invites receiver to connect. A declined or withdrawn request
// between the same pair is reopened.
func (s *ConnectionService) SendRequest(ctx context.Context, actor uint, req models.SendConnectionRequest) (*models.ConnectionRequest, error) {
	if req.ReceiverID == actor {
		return nil, fieldError("receiver_id", "You cannot send a connection request to yourself")
	}
	if _, err := s.activeUser(ctx, req.ReceiverID); err != nil {
		return nil, err
	}
	blocked, err := s.stores.Blocks.IsBlockedEither(ctx, actor, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, forbidden("You cannot connect with this user")
	}

	request := &models.ConnectionRequest{SenderID: actor, ReceiverID: req.ReceiverID, Message: req.Message}
	if err := s.stores.Connections.SendRequest(ctx, request); err != nil {
		return nil, requestError(err)
	}
	metrics.ConnectionEvents.WithLabelValues("sent").Inc()
	s.notifier.notify(ctx, models.Notice{
		Recipient: req.ReceiverID,
		Sender:    &actor,
		Type:      models.NotificationConnectionRequest,
		Title:     "New connection request",
		Message:   fmt.Sprintf("%s wants to connect with you", s.notifier.nameOf(ctx, actor)),
		ActionURL: "/connections/requests/received",
	})
	return request, nil
}

func requestError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAlreadyConnected):
		return conflict("You are already connected with this user")
	case errors.Is(err, repositories.ErrRequestPending):
		return conflict("Connection request already sent")
	case errors.Is(err, repositories.ErrReverseRequest):
		return conflict("This user has already sent you a connection request. Please respond to it instead.")
	case errors.Is(err, repositories.ErrRequestNotPending):
		return conflict("This connection request has already been responded to")
	case errors.Is(err, repositories.ErrDuplicate):
		return conflict("Connection request already exists")
	}
	return storeError(err, "Connection request")
}

// Respond accepts or declines a pending request addressed to actor.
// Accepting creates the connection and notifies the sender.
func (s *ConnectionService) Respond(ctx context.Context, actor, requestID uint, accept bool) (*models.ConnectionRequest, *models.Connection, error) {
	request, err := s.stores.Connections.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, storeError(err, "Connection request")
	}
	if request.ReceiverID != actor {
		return nil, nil, forbidden("You can only respond to requests sent to you")
	}
	if request.Status != models.ConnectionPending {
		return nil, nil, conflict("This connection request has already been responded to")
	}
	now := s.now()

	if !accept {
		if err := s.stores.Connections.SetRequestStatus(ctx, request.ID, models.ConnectionDeclined, now); err != nil {
			return nil, nil, requestError(err)
		}
		request.Status = models.ConnectionDeclined
		request.RespondedAt = &now
		metrics.ConnectionEvents.WithLabelValues("declined").Inc()
		return request, nil, nil
	}

	conn, err := s.stores.Connections.AcceptRequest(ctx, request, now)
	if err != nil {
		return nil, nil, requestError(err)
	}
	metrics.ConnectionEvents.WithLabelValues("accepted").Inc()
	s.notifier.notify(ctx, models.Notice{
		Recipient: request.SenderID,
		Sender:    &actor,
		Type:      models.NotificationConnectionAccepted,
		Title:     "Connection request accepted",
		Message:   fmt.Sprintf("%s accepted your connection request", s.notifier.nameOf(ctx, actor)),
		ActionURL: fmt.Sprintf("/users/%d", actor),
	})
	return request, conn, nil
}

// Withdraw cancels a pending request the actor sent.
func (s *ConnectionService) Withdraw(ctx context.Context, actor, requestID uint) error {
	request, err := s.stores.Connections.GetRequestByID(ctx, requestID)
	if err != nil {
		return storeError(err, "Connection request")
	}
	if request.SenderID != actor {
		return forbidden("You can only withdraw requests you sent")
	}
	if request.Status != models.ConnectionPending {
		return conflict("Only pending requests can be withdrawn")
	}
	if err := s.stores.Connections.SetRequestStatus(ctx, request.ID, models.ConnectionWithdrawn, s.now()); err != nil {
		return requestError(err)
	}
	metrics.ConnectionEvents.WithLabelValues("withdrawn").Inc()
	return nil
}

func (s *ConnectionService) RemoveConnection(ctx context.Context, actor, connectionID uint) error {
	conn, err := s.stores.Connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return storeError(err, "Connection")
	}
	if !conn.Involves(actor) {
		return forbidden("You are not part of this connection")
	}
	if err := s.stores.Connections.DeleteConnection(ctx, conn.ID); err != nil {
		return storeError(err, "Connection")
	}
	metrics.ConnectionEvents.WithLabelValues("removed").Inc()
	return nil
}

func (s *ConnectionService) ListRequests(ctx context.Context, actor uint, incoming bool, page repositories.Page) ([]models.ConnectionRequest, int64, error) {
	return s.stores.Connections.ListPendingRequests(ctx, actor, incoming, page)
}

// ListConnections pages through the actor's connections with the other
// member's summary.
func (s *ConnectionService) ListConnections(ctx context.Context, actor uint, page repositories.Page) ([]models.ConnectedUser, int64, error) {
	conns, total, err := s.stores.Connections.ListConnections(ctx, actor, page)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(conns))
	for i, c := range conns {
		ids[i] = c.Other(actor)
	}
	users, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]models.ConnectedUser, 0, len(conns))
	for _, c := range conns {
		u, ok := users[c.Other(actor)]
		if !ok {
			continue
		}
		out = append(out, models.ConnectedUser{ConnectionID: c.ID, User: u.ToCompact(), ConnectedAt: c.CreatedAt})
	}
	return out, total, nil
}

func (s *ConnectionService) usersByID(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	users, err := s.stores.Users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *ConnectionService) mutualIDs(ctx context.Context, a, b uint) ([]uint, error) {
	mine, err := s.stores.Connections.ConnectedUserIDs(ctx, a)
	if err != nil {
		return nil, err
	}
	theirs, err := s.stores.Connections.ConnectedUserIDs(ctx, b)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(mine))
	for _, id := range mine {
		set[id] = true
	}
	var out []uint
	for _, id := range theirs {
		if set[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *ConnectionService) MutualConnections(ctx context.Context, actor, other uint) ([]models.UserCompact, error) {
	if _, err := s.activeUser(ctx, other); err != nil {
		return nil, err
	}
	ids, err := s.mutualIDs(ctx, actor, other)
	if err != nil {
		return nil, err
	}
	users, err := s.stores.Users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out, nil
}

// Status describes how actor relates to other.
func (s *ConnectionService) Status(ctx context.Context, actor, other uint) (*models.RelationshipStatus, error) {
	if _, err := s.activeUser(ctx, other); err != nil {
		return nil, err
	}
	status := &models.RelationshipStatus{UserID: other}
	conn, err := s.stores.Connections.GetConnectionBetween(ctx, actor, other)
	switch {
	case err == nil:
		status.Connected = true
		status.ConnectionID = conn.ID
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	request, err := s.stores.Connections.GetPendingBetween(ctx, actor, other)
	switch {
	case err == nil:
		status.Request = request
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	if status.Following, err = s.stores.Follows.IsFollowing(ctx, actor, other); err != nil {
		return nil, err
	}
	if status.FollowedBy, err = s.stores.Follows.IsFollowing(ctx, other, actor); err != nil {
		return nil, err
	}
	if status.Blocked, err = s.stores.Blocks.IsBlockedEither(ctx, actor, other); err != nil {
		return nil, err
	}
	mutual, err := s.mutualIDs(ctx, actor, other)
	if err != nil {
		return nil, err
	}
	status.MutualCount = len(mutual)
	return status, nil
}

// Recommendations suggests the members sharing the most connections with
// actor, skipping existing connections, pending requests and blocks.
func (s *ConnectionService) Recommendations(ctx context.Context, actor uint, limit int) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	mine, err := s.stores.Connections.ConnectedUserIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	pending, err := s.stores.Connections.PendingPartnerIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	blocked, err := s.stores.Blocks.BlockedUserIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	exclude := map[uint]bool{actor: true}
	for _, ids := range [][]uint{mine, pending, blocked} {
		for _, id := range ids {
			exclude[id] = true
		}
	}

	secondDegree, err := s.stores.Connections.ConnectionsOf(ctx, mine)
	if err != nil {
		return nil, err
	}
	mineSet := make(map[uint]bool, len(mine))
	for _, id := range mine {
		mineSet[id] = true
	}
	mutual := map[uint]int{}
	for _, c := range secondDegree {
		for _, pair := range [][2]uint{{c.User1ID, c.User2ID}, {c.User2ID, c.User1ID}} {
			via, candidate := pair[0], pair[1]
			if mineSet[via] && !exclude[candidate] {
				mutual[candidate]++
			}
		}
	}

	ids := make([]uint, 0, len(mutual))
	for id := range mutual {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if mutual[ids[i]] != mutual[ids[j]] {
			return mutual[ids[i]] > mutual[ids[j]]
		}
		return ids[i] < ids[j]
	})
	users, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.Recommendation, 0, limit)
	for _, id := range ids {
		u, ok := users[id]
		if !ok || !u.IsActive {
			continue
		}
		out = append(out, models.Recommendation{User: u.ToCompact(), MutualConnections: mutual[id]})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Follow subscribes actor to target's activity.
func (s *ConnectionService) Follow(ctx context.Context, actor, target uint) (models.Outcome, error) {
	if actor == target {
		return "", validation("You cannot follow yourself")
	}
	if _, err := s.activeUser(ctx, target); err != nil {
		return "", err
	}
	blocked, err := s.stores.Blocks.IsBlockedEither(ctx, actor, target)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", forbidden("You cannot follow this user")
	}
	created, err := s.stores.Follows.CreateFollow(ctx, actor, target)
	if err != nil {
		return "", storeError(err, "Follow")
	}
	if !created {
		return models.OutcomeAlreadyFollowed, nil
	}
	s.notifier.notify(ctx, models.Notice{
		Recipient: target,
		Sender:    &actor,
		Type:      models.NotificationFollow,
		Title:     "New follower",
		Message:   fmt.Sprintf("%s started following you", s.notifier.nameOf(ctx, actor)),
		ActionURL: fmt.Sprintf("/users/%d", actor),
	})
	s.activity.trackObject(ctx, actor, models.ActivityUserFollow, "user", target)
	return models.OutcomeFollowed, nil
}

func (s *ConnectionService) Unfollow(ctx context.Context, actor, target uint) (models.Outcome, error) {
	removed, err := s.stores.Follows.DeleteFollow(ctx, actor, target)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", notFound("You are not following this user")
	}
	return models.OutcomeUnfollowed, nil
}

func (s *ConnectionService) Followers(ctx context.Context, userID uint, page repositories.Page) ([]models.User, int64, error) {
	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.stores.Follows.GetFollowers(ctx, userID, page)
}

func (s *ConnectionService) Following(ctx context.Context, userID uint, page repositories.Page) ([]models.User, int64, error) {
	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.stores.Follows.GetFollowing(ctx, userID, page)
}

// Block also drops any connection, pending request and follow between the two.
func (s *ConnectionService) Block(ctx context.Context, actor, target uint) (bool, error) {
	if actor == target {
		return false, validation("You cannot block yourself")
	}
	if _, err := s.stores.Users.GetUserByID(ctx, target); err != nil {
		return false, storeError(err, "User")
	}
	return s.stores.Blocks.Block(ctx, actor, target)
}

func (s *ConnectionService) Unblock(ctx context.Context, actor, target uint) (bool, error) {
	return s.stores.Blocks.Unblock(ctx, actor, target)
}
