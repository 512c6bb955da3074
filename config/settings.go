package config

import "sync"

// PostingSettings controls automatic schedule placement.
//
// PostsPerDay and MinTimeBetweenPostsHours are accepted and stored but the
// scheduling algorithm does not consult them: placement is random within the
// active hours only. They are reserved for a future spacing policy.
type PostingSettings struct {
	PostsPerDay              float64     `json:"posts_per_day"`
	MinTimeBetweenPostsHours int         `json:"min_time_between_posts"`
	ActiveHours              ActiveHours `json:"active_hours"`
}

type ActiveHours struct {
	Weekdays []int `json:"weekdays"`
	Weekends []int `json:"weekends"`
}

// EngagementSettings are the process-wide defaults for new posts.
type EngagementSettings struct {
	AutoLike          bool     `json:"auto_like"`
	AutoComment       bool     `json:"auto_comment"`
	MaxLikesPerDay    int      `json:"max_likes_per_day"`
	MaxCommentsPerDay int      `json:"max_comments_per_day"`
	TargetHashtags    []string `json:"target_hashtags"`
	TargetAccounts    []string `json:"target_accounts"`
}

// Settings is the single process-wide holder for runtime-mutable
// configuration. All reads and writes go through its methods; callers get
// copies, never references into the guarded state.
type Settings struct {
	mu         sync.RWMutex
	posting    PostingSettings
	engagement EngagementSettings
}

func NewSettings() *Settings {
	return &Settings{
		posting: PostingSettings{
			PostsPerDay:              0.5,
			MinTimeBetweenPostsHours: 48,
			ActiveHours: ActiveHours{
				Weekdays: []int{8, 12, 17, 19, 21},
				Weekends: []int{10, 13, 15, 20, 22},
			},
		},
		engagement: EngagementSettings{
			AutoLike:          false,
			AutoComment:       false,
			MaxLikesPerDay:    50,
			MaxCommentsPerDay: 20,
		},
	}
}

func (s *Settings) Posting() PostingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.posting
	out.ActiveHours.Weekdays = append([]int(nil), s.posting.ActiveHours.Weekdays...)
	out.ActiveHours.Weekends = append([]int(nil), s.posting.ActiveHours.Weekends...)
	return out
}

// UpdatePosting applies non-zero fields from the update and returns the
// resulting settings.
func (s *Settings) UpdatePosting(update PostingSettings) PostingSettings {
	s.mu.Lock()
	if update.PostsPerDay > 0 {
		s.posting.PostsPerDay = update.PostsPerDay
	}
	if update.MinTimeBetweenPostsHours > 0 {
		s.posting.MinTimeBetweenPostsHours = update.MinTimeBetweenPostsHours
	}
	if len(update.ActiveHours.Weekdays) > 0 {
		s.posting.ActiveHours.Weekdays = append([]int(nil), update.ActiveHours.Weekdays...)
	}
	if len(update.ActiveHours.Weekends) > 0 {
		s.posting.ActiveHours.Weekends = append([]int(nil), update.ActiveHours.Weekends...)
	}
	s.mu.Unlock()
	return s.Posting()
}

func (s *Settings) Engagement() EngagementSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.engagement
	out.TargetHashtags = append([]string(nil), s.engagement.TargetHashtags...)
	out.TargetAccounts = append([]string(nil), s.engagement.TargetAccounts...)
	return out
}

type EngagementUpdate struct {
	AutoLike          *bool    `json:"auto_like"`
	AutoComment       *bool    `json:"auto_comment"`
	MaxLikesPerDay    int      `json:"max_likes_per_day"`
	MaxCommentsPerDay int      `json:"max_comments_per_day"`
	TargetHashtags    []string `json:"target_hashtags"`
	TargetAccounts    []string `json:"target_accounts"`
}

func (s *Settings) UpdateEngagement(update EngagementUpdate) EngagementSettings {
	s.mu.Lock()
	if update.AutoLike != nil {
		s.engagement.AutoLike = *update.AutoLike
	}
	if update.AutoComment != nil {
		s.engagement.AutoComment = *update.AutoComment
	}
	if update.MaxLikesPerDay > 0 {
		s.engagement.MaxLikesPerDay = update.MaxLikesPerDay
	}
	if update.MaxCommentsPerDay > 0 {
		s.engagement.MaxCommentsPerDay = update.MaxCommentsPerDay
	}
	if update.TargetHashtags != nil {
		s.engagement.TargetHashtags = append([]string(nil), update.TargetHashtags...)
	}
	if update.TargetAccounts != nil {
		s.engagement.TargetAccounts = append([]string(nil), update.TargetAccounts...)
	}
	s.mu.Unlock()
	return s.Engagement()
}
