package rpc

// User is the public view of an account.
type User struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User    *User  `json:"user"`
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type MeRequest struct{}

type MeResponse struct {
	User    *User `json:"user"`
	IsAdmin bool  `json:"is_admin"`
}

// Bit is a leaderboard entry as seen by one viewer.
type Bit struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Author is the stored author text; Owner is the resolved name shown as "By:".
	Author        string  `json:"author"`
	AuthorId      string  `json:"author_id"`
	Owner         string  `json:"owner"`
	Rating        float64 `json:"rating"`
	Votes         int32   `json:"votes"`
	DisplayRating string  `json:"display_rating"`
	// MyScore is the viewer's own score, 0 if they have not rated the bit.
	MyScore   int32 `json:"my_score"`
	CreatedAt int64 `json:"created_at"`
}

// Owner is one "Top Bitters" entry.
type Owner struct {
	Name    string  `json:"name"`
	Bits    int32   `json:"bits"`
	Average float64 `json:"average"`
}

type Stats struct {
	Bits         int32   `json:"bits"`
	Average      float64 `json:"average"`
	HasAverage   bool    `json:"has_average"`
	RatingsGiven int32   `json:"ratings_given,omitempty"`
	Authors      int32   `json:"authors,omitempty"`
}

// Board is every derived view of one snapshot.
type Board struct {
	SortMode     string   `json:"sort_mode"`
	Leaderboard  []*Bit   `json:"leaderboard"`
	MyBits       []*Bit   `json:"my_bits"`
	TopByCount   []*Owner `json:"top_by_count"`
	TopByAverage []*Owner `json:"top_by_average"`
	MyStats      *Stats   `json:"my_stats"`
	GlobalStats  *Stats   `json:"global_stats"`
}

type CreateBitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateBitResponse struct {
	Bit *Bit `json:"bit"`
}

type RateBitRequest struct {
	BitId string `json:"bit_id"`
	Score int32  `json:"score"`
}

type RateBitResponse struct {
	BitId  string  `json:"bit_id"`
	Rating float64 `json:"rating"`
	Votes  int32   `json:"votes"`
}

type ReassignBitRequest struct {
	BitId    string `json:"bit_id"`
	Username string `json:"username"`
}

type ReassignBitResponse struct {
	BitId    string `json:"bit_id"`
	Author   string `json:"author"`
	AuthorId string `json:"author_id"`
}

type GetBoardRequest struct {
	SortMode string `json:"sort_mode,omitempty"`
}

type GetBoardResponse struct {
	Board *Board `json:"board"`
}

type WatchBoardRequest struct {
	SortMode string `json:"sort_mode,omitempty"`
}
