package domain

// User is an account as returned by the identity endpoints.
type User struct {
	ID            int64     `json:"id" yaml:"id"`
	Email         string    `json:"email" yaml:"email"`
	Username      string    `json:"username" yaml:"username"`
	FullName      *string   `json:"full_name" yaml:"full_name"`
	Role          Role      `json:"role" yaml:"role"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	IsVerified    bool      `json:"is_verified" yaml:"is_verified"`
	InstitutionID *int64    `json:"institution_id" yaml:"institution_id"`
	CreatedAt     Timestamp `json:"created_at" yaml:"created_at"`
}

// DisplayName returns the full name when set, else the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// Clone returns a copy that shares no pointers with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.FullName != nil {
		name := *u.FullName
		c.FullName = &name
	}
	if u.InstitutionID != nil {
		id := *u.InstitutionID
		c.InstitutionID = &id
	}
	return &c
}

// Token is the credential exchange response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// UserInput carries fields for creating or updating a user. Nil fields are
// omitted from the request body.
type UserInput struct {
	Email         *string `json:"email,omitempty"`
	Username      *string `json:"username,omitempty"`
	FullName      *string `json:"full_name,omitempty"`
	Password      *string `json:"password,omitempty"`
	Role          *Role   `json:"role,omitempty"`
	InstitutionID *int64  `json:"institution_id,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// Institution is a school or club that owns sports, teams and venues.
type Institution struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Code         string    `json:"code" yaml:"code"`
	Address      *string   `json:"address" yaml:"address"`
	ContactEmail *string   `json:"contact_email" yaml:"contact_email"`
	ContactPhone *string   `json:"contact_phone" yaml:"contact_phone"`
	LogoURL      *string   `json:"logo_url" yaml:"logo_url"`
	Description  *string   `json:"description" yaml:"description"`
	IsActive     bool      `json:"is_active" yaml:"is_active"`
	CreatedAt    Timestamp `json:"created_at" yaml:"created_at"`
}

// SportType classifies how a sport is played.
type SportType string

// Sport types
const (
	SportIndividual SportType = "individual"
	SportTeam       SportType = "team"
	SportMixed      SportType = "mixed"
)

// Sport is a sport offered by an institution.
type Sport struct {
	ID                int64     `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Code              string    `json:"code" yaml:"code"`
	SportType         SportType `json:"sport_type" yaml:"sport_type"`
	Description       *string   `json:"description" yaml:"description"`
	MaxPlayersPerTeam *int      `json:"max_players_per_team" yaml:"max_players_per_team"`
	MinPlayersPerTeam *int      `json:"min_players_per_team" yaml:"min_players_per_team"`
	InstitutionID     int64     `json:"institution_id" yaml:"institution_id"`
	OrganizerID       int64     `json:"organizer_id" yaml:"organizer_id"`
	IsActive          bool      `json:"is_active" yaml:"is_active"`
	CreatedAt         Timestamp `json:"created_at" yaml:"created_at"`
}

// Team belongs to an institution and plays one sport.
type Team struct {
	ID            int64     `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Code          *string   `json:"code" yaml:"code"`
	InstitutionID int64     `json:"institution_id" yaml:"institution_id"`
	SportID       int64     `json:"sport_id" yaml:"sport_id"`
	CoachID       *int64    `json:"coach_id" yaml:"coach_id"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	CreatedAt     Timestamp `json:"created_at" yaml:"created_at"`
}

// Player links a user account to a team roster.
type Player struct {
	ID           int64      `json:"id" yaml:"id"`
	UserID       int64      `json:"user_id" yaml:"user_id"`
	TeamID       *int64     `json:"team_id" yaml:"team_id"`
	JerseyNumber *int       `json:"jersey_number" yaml:"jersey_number"`
	Position     *string    `json:"position" yaml:"position"`
	IsActive     bool       `json:"is_active" yaml:"is_active"`
	DateOfBirth  *Timestamp `json:"date_of_birth" yaml:"date_of_birth"`
	CreatedAt    Timestamp  `json:"created_at" yaml:"created_at"`
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

// Match statuses
const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
	MatchPostponed MatchStatus = "postponed"
)

// Match is a scheduled fixture between two teams.
type Match struct {
	ID              int64       `json:"id" yaml:"id"`
	MatchNumber     *string     `json:"match_number" yaml:"match_number"`
	ScheduledTime   Timestamp   `json:"scheduled_time" yaml:"scheduled_time"`
	ActualStartTime *Timestamp  `json:"actual_start_time" yaml:"actual_start_time"`
	ActualEndTime   *Timestamp  `json:"actual_end_time" yaml:"actual_end_time"`
	Status          MatchStatus `json:"status" yaml:"status"`
	VenueName       *string     `json:"venue_name" yaml:"venue_name"`
	VenueID         *int64      `json:"venue_id" yaml:"venue_id"`
	Notes           *string     `json:"notes" yaml:"notes"`
	SportID         int64       `json:"sport_id" yaml:"sport_id"`
	HomeTeamID      *int64      `json:"home_team_id" yaml:"home_team_id"`
	AwayTeamID      *int64      `json:"away_team_id" yaml:"away_team_id"`
	ScheduleID      *int64      `json:"schedule_id" yaml:"schedule_id"`
	CreatedBy       int64       `json:"created_by" yaml:"created_by"`
	CreatedAt       Timestamp   `json:"created_at" yaml:"created_at"`

	// Relationships the backend may embed.
	Sport    *Sport `json:"sport,omitempty" yaml:"sport,omitempty"`
	HomeTeam *Team  `json:"home_team,omitempty" yaml:"home_team,omitempty"`
	AwayTeam *Team  `json:"away_team,omitempty" yaml:"away_team,omitempty"`
}

// Score is the current score of a match.
type Score struct {
	ID             int64      `json:"id" yaml:"id"`
	MatchID        int64      `json:"match_id" yaml:"match_id"`
	HomeScore      int        `json:"home_score" yaml:"home_score"`
	AwayScore      int        `json:"away_score" yaml:"away_score"`
	Period         *string    `json:"period" yaml:"period"`
	AdditionalInfo *string    `json:"additional_info" yaml:"additional_info"`
	CreatedAt      Timestamp  `json:"created_at" yaml:"created_at"`
	UpdatedAt      *Timestamp `json:"updated_at" yaml:"updated_at"`
}

// ScoreUpdate is the body of an organizer score update.
type ScoreUpdate struct {
	HomeScore   *int    `json:"home_score,omitempty"`
	AwayScore   *int    `json:"away_score,omitempty"`
	Period      *string `json:"period,omitempty"`
	UpdateType  *string `json:"update_type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LiveScoreUpdate is the body of a coach live score action.
type LiveScoreUpdate struct {
	ScoreUpdate
	AdditionalInfo    *string        `json:"additional_info,omitempty"`
	Action            *string        `json:"action,omitempty"`
	Points            *int           `json:"points,omitempty"`
	PlayerID          *int64         `json:"player_id,omitempty"`
	Team              *string        `json:"team,omitempty"`
	SportSpecificData map[string]any `json:"sport_specific_data,omitempty"`
}

// ScoreDetails is the coach view of a match score.
type ScoreDetails struct {
	SportCode *string        `json:"sport_code" yaml:"sport_code"`
	SportName string         `json:"sport_name" yaml:"sport_name"`
	ScoreData map[string]any `json:"score_data" yaml:"score_data"`
	HomeScore int            `json:"home_score" yaml:"home_score"`
	AwayScore int            `json:"away_score" yaml:"away_score"`
	Period    *string        `json:"period" yaml:"period"`
}

// MatchEnded acknowledges a coach ending a match.
type MatchEnded struct {
	Message string `json:"message" yaml:"message"`
	MatchID int64  `json:"match_id" yaml:"match_id"`
}

// TournamentStatus is the lifecycle state of a tournament.
type TournamentStatus string

// Tournament statuses
const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

// Tournament groups schedules and matches of an institution.
type Tournament struct {
	ID            int64            `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Description   *string          `json:"description" yaml:"description"`
	StartDate     Timestamp        `json:"start_date" yaml:"start_date"`
	EndDate       *Timestamp       `json:"end_date" yaml:"end_date"`
	Status        TournamentStatus `json:"status" yaml:"status"`
	IsPublic      bool             `json:"is_public" yaml:"is_public"`
	InstitutionID int64            `json:"institution_id" yaml:"institution_id"`
	IsActive      bool             `json:"is_active" yaml:"is_active"`
	CreatedAt     Timestamp        `json:"created_at" yaml:"created_at"`
}

// Venue is a place where matches are played.
type Venue struct {
	ID            int64     `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Address       *string   `json:"address" yaml:"address"`
	Capacity      *int      `json:"capacity" yaml:"capacity"`
	Facilities    *string   `json:"facilities" yaml:"facilities"`
	InstitutionID int64     `json:"institution_id" yaml:"institution_id"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	CreatedAt     Timestamp `json:"created_at" yaml:"created_at"`
}

// Notification is a message addressed to the current user.
type Notification struct {
	ID               int64      `json:"id" yaml:"id"`
	UserID           int64      `json:"user_id" yaml:"user_id"`
	Title            string     `json:"title" yaml:"title"`
	Message          string     `json:"message" yaml:"message"`
	NotificationType string     `json:"notification_type" yaml:"notification_type"`
	IsRead           bool       `json:"is_read" yaml:"is_read"`
	ReadAt           *Timestamp `json:"read_at" yaml:"read_at"`
	LinkURL          *string    `json:"link_url" yaml:"link_url"`
	CreatedAt        Timestamp  `json:"created_at" yaml:"created_at"`
}

// UnreadCount is the unread notification counter.
type UnreadCount struct {
	UnreadCount int `json:"unread_count" yaml:"unread_count"`
}

// ScheduleType is the competition format of a schedule.
type ScheduleType string

// Schedule types
const (
	ScheduleRoundRobin ScheduleType = "round_robin"
	ScheduleKnockout   ScheduleType = "knockout"
	ScheduleLeague     ScheduleType = "league"
	ScheduleCustom     ScheduleType = "custom"
)

// Schedule is a generated fixture list for one sport.
type Schedule struct {
	ID           int64        `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	ScheduleType ScheduleType `json:"schedule_type" yaml:"schedule_type"`
	StartDate    Timestamp    `json:"start_date" yaml:"start_date"`
	EndDate      *Timestamp   `json:"end_date" yaml:"end_date"`
	Description  *string      `json:"description" yaml:"description"`
	SportID      int64        `json:"sport_id" yaml:"sport_id"`
	TournamentID *int64       `json:"tournament_id" yaml:"tournament_id"`
	IsActive     bool         `json:"is_active" yaml:"is_active"`
	CreatedAt    Timestamp    `json:"created_at" yaml:"created_at"`
}

// Document is a loosely typed payload for endpoints whose shape varies by
// sport (templates, statistics, score history entries).
type Document map[string]any
