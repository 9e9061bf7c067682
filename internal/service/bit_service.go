package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/bithub/internal/catalog"
	"github.com/mmynk/bithub/internal/feed"
	"github.com/mmynk/bithub/internal/metrics"
	"github.com/mmynk/bithub/internal/middleware"
	"github.com/mmynk/bithub/internal/models"
	"github.com/mmynk/bithub/internal/rpc"
	"github.com/mmynk/bithub/internal/storage"
)

// BitService implements the Connect BitService.
//
// It loads snapshots from the store, hands them to the catalog package, and
// writes back whatever catalog computes. Every successful write is published
// to the broker so open WatchBoard streams recompute.
type BitService struct {
	rpc.UnimplementedBitServiceHandler
	store   storage.Store
	broker  *feed.Broker
	metrics *metrics.Metrics
}

// NewBitService creates a new BitService with the given storage backend.
func NewBitService(store storage.Store, broker *feed.Broker, m *metrics.Metrics) *BitService {
	return &BitService{store: store, broker: broker, metrics: m}
}

// snapshot loads every bit and user, plus the caller's account if any.
func (s *BitService) snapshot(ctx context.Context) (catalog.Snapshot, error) {
	bits, err := s.store.ListBits(ctx)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to load bits: %w", err)
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to load users: %w", err)
	}

	snap := catalog.Snapshot{Bits: bits, Users: users}
	if userID := middleware.GetUserID(ctx); userID != "" {
		for i := range users {
			if users[i].ID == userID {
				snap.Current = &users[i]
				break
			}
		}
	}
	return snap, nil
}

// board loads a fresh snapshot and recomputes every derived view.
func (s *BitService) board(ctx context.Context, view catalog.View) (*rpc.Board, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	board := boardToProto(catalog.Board(snap, view), snap)
	s.metrics.ObserveRecompute(start)
	return board, nil
}

// currentUser returns the caller's account.
func (s *BitService) currentUser(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("sign in required"))
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("account %s no longer exists", userID))
	}
	return user, nil
}

// CreateBit submits a new, unrated bit credited to the caller.
func (s *BitService) CreateBit(ctx context.Context, req *connect.Request[rpc.CreateBitRequest]) (*connect.Response[rpc.CreateBitResponse], error) {
	slog.Info("CreateBit request received", "name", req.Msg.Name)

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	bit, err := catalog.NewBit(req.Msg.Name, req.Msg.Description, user)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateBit(ctx, &bit); err != nil {
		slog.Error("CreateBit failed", "error", err)
		s.metrics.MutationFailures.WithLabelValues("create").Inc()
		return nil, toConnectError(mutationFailed(err))
	}
	s.metrics.BitsCreated.Inc()
	s.broker.Publish()

	slog.Info("Bit created", "bit_id", bit.ID, "author", bit.Author)

	return connect.NewResponse(&rpc.CreateBitResponse{
		Bit: bitToProto(bit, catalog.NewDirectory([]models.User{*user}), user.ID),
	}), nil
}

// RateBit records the caller's score for a bit, replacing any earlier score.
func (s *BitService) RateBit(ctx context.Context, req *connect.Request[rpc.RateBitRequest]) (*connect.Response[rpc.RateBitResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("RateBit request received", "bit_id", req.Msg.BitId, "score", req.Msg.Score, "user_id", userID)

	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("sign in required"))
	}
	bitID := strings.TrimSpace(req.Msg.BitId)
	if bitID == "" {
		return nil, toConnectError(fmt.Errorf("%w: bit_id required", catalog.ErrMissingInput))
	}
	score := int(req.Msg.Score)
	if !catalog.ValidScore(score) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("score must be between %d and %d, got %d", catalog.MinScore, catalog.MaxScore, score))
	}

	bit, err := s.store.RateBit(ctx, bitID, userID, score)
	if err != nil {
		slog.Error("RateBit failed", "bit_id", bitID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, toConnectError(err)
		}
		s.metrics.MutationFailures.WithLabelValues("rate").Inc()
		return nil, toConnectError(mutationFailed(err))
	}
	s.metrics.Ratings.Inc()
	s.broker.Publish()

	slog.Info("Bit rated", "bit_id", bit.ID, "rating", bit.Rating, "votes", bit.Votes())

	return connect.NewResponse(&rpc.RateBitResponse{
		BitId:  bit.ID,
		Rating: bit.Rating,
		Votes:  int32(bit.Votes()),
	}), nil
}

// ReassignBit credits a bit to another username. Administrators only.
func (s *BitService) ReassignBit(ctx context.Context, req *connect.Request[rpc.ReassignBitRequest]) (*connect.Response[rpc.ReassignBitResponse], error) {
	slog.Info("ReassignBit request received", "bit_id", req.Msg.BitId, "username", req.Msg.Username)

	isAdmin := middleware.IsAdmin(ctx)
	var users []models.User
	if isAdmin {
		var err error
		if users, err = s.store.ListUsers(ctx); err != nil {
			slog.Error("ReassignBit failed - could not list users", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	update, err := catalog.ResolveReassignment(req.Msg.BitId, req.Msg.Username, users, isAdmin)
	if err != nil {
		slog.Warn("ReassignBit rejected", "bit_id", req.Msg.BitId, "error", err)
		outcome := metrics.OutcomeRejected
		if errors.Is(err, catalog.ErrAmbiguousUsername) {
			outcome = metrics.OutcomeAmbiguous
		}
		s.metrics.Reassignments.WithLabelValues(outcome).Inc()
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateBitOwner(ctx, update.BitID, update.Author, update.AuthorID); err != nil {
		slog.Error("ReassignBit failed", "bit_id", update.BitID, "error", err)
		s.metrics.MutationFailures.WithLabelValues("reassign").Inc()
		return nil, toConnectError(mutationFailed(err))
	}
	outcome := metrics.OutcomeLinked
	if update.AuthorID == "" {
		outcome = metrics.OutcomeNameOnly
	}
	s.metrics.Reassignments.WithLabelValues(outcome).Inc()
	s.broker.Publish()

	slog.Info("Bit reassigned", "bit_id", update.BitID, "author", update.Author, "author_id", update.AuthorID)

	return connect.NewResponse(&rpc.ReassignBitResponse{
		BitId:    update.BitID,
		Author:   update.Author,
		AuthorId: update.AuthorID,
	}), nil
}

// GetBoard returns the leaderboard, owner boards and stats for one sort mode.
func (s *BitService) GetBoard(ctx context.Context, req *connect.Request[rpc.GetBoardRequest]) (*connect.Response[rpc.GetBoardResponse], error) {
	mode, err := catalog.ParseSortMode(req.Msg.SortMode)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	board, err := s.board(ctx, catalog.View{Mode: mode})
	if err != nil {
		slog.Error("GetBoard failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Debug("GetBoard successful", "mode", mode, "bits", len(board.Leaderboard))

	return connect.NewResponse(&rpc.GetBoardResponse{Board: board}), nil
}

// WatchBoard sends the board immediately and again after every change until
// the client goes away.
func (s *BitService) WatchBoard(ctx context.Context, req *connect.Request[rpc.WatchBoardRequest], stream *connect.ServerStream[rpc.Board]) error {
	mode, err := catalog.ParseSortMode(req.Msg.SortMode)
	if err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	view := catalog.View{Mode: mode}

	id, changes := s.broker.Subscribe()
	defer s.broker.Unsubscribe(id)
	s.metrics.Watchers.Inc()
	defer s.metrics.Watchers.Dec()

	send := func() error {
		board, err := s.board(ctx, view)
		if err != nil {
			slog.Error("WatchBoard recompute failed", "error", err)
			return connect.NewError(connect.CodeInternal, err)
		}
		return stream.Send(board)
	}

	if err := send(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				// Broker closed: server is shutting down.
				return nil
			}
			if err := send(); err != nil {
				return err
			}
		}
	}
}
