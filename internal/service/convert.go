package service

import (
	"github.com/mmynk/bithub/internal/catalog"
	"github.com/mmynk/bithub/internal/models"
	"github.com/mmynk/bithub/internal/rpc"
)

func userToProto(user *models.User) *rpc.User {
	return &rpc.User{
		Id:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

// bitToProto renders bit for viewerID, resolving its owner through dir.
func bitToProto(bit models.Bit, dir catalog.Directory, viewerID string) *rpc.Bit {
	return &rpc.Bit{
		Id:            bit.ID,
		Name:          bit.Name,
		Description:   bit.Description,
		Author:        bit.Author,
		AuthorId:      bit.AuthorID,
		Owner:         catalog.OwnerName(bit, dir),
		Rating:        bit.Rating,
		Votes:         int32(bit.Votes()),
		DisplayRating: catalog.DisplayRating(bit),
		MyScore:       int32(bit.Ratings[viewerID]),
		CreatedAt:     bit.CreatedAt,
	}
}

func bitsToProto(bits []models.Bit, dir catalog.Directory, viewerID string) []*rpc.Bit {
	out := make([]*rpc.Bit, len(bits))
	for i, bit := range bits {
		out[i] = bitToProto(bit, dir, viewerID)
	}
	return out
}

func ownersToProto(aggs []catalog.OwnerAggregate) []*rpc.Owner {
	out := make([]*rpc.Owner, len(aggs))
	for i, a := range aggs {
		out[i] = &rpc.Owner{
			Name:    a.Name,
			Bits:    int32(a.Count),
			Average: a.Avg(),
		}
	}
	return out
}

func statsToProto(s catalog.Stats) *rpc.Stats {
	return &rpc.Stats{
		Bits:         int32(s.Bits),
		Average:      s.Average,
		HasAverage:   s.HasAverage,
		RatingsGiven: int32(s.RatingsGiven),
		Authors:      int32(s.Authors),
	}
}

func boardToProto(view catalog.BoardView, snap catalog.Snapshot) *rpc.Board {
	dir := catalog.NewDirectory(snap.Users)
	var viewerID string
	if snap.Current != nil {
		viewerID = snap.Current.ID
	}

	return &rpc.Board{
		SortMode:     view.Mode.String(),
		Leaderboard:  bitsToProto(view.Leaderboard, dir, viewerID),
		MyBits:       bitsToProto(view.MyBits, dir, viewerID),
		TopByCount:   ownersToProto(view.Owners.TopByCount),
		TopByAverage: ownersToProto(view.Owners.TopByAverage),
		MyStats:      statsToProto(view.MyStats),
		GlobalStats:  statsToProto(view.GlobalStats),
	}
}
