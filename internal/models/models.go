package models

// Relational returns every gorm model, in migration order.
func Relational() []interface{} {
	return []interface{}{
		&User{},
		&BlacklistedToken{},
		&Experience{},
		&Education{},
		&Skill{},
		&UserSkill{},
		&SkillEndorsement{},
		&Hashtag{},
		&Post{},
		&Comment{},
		&CommentLike{},
		&Reaction{},
		&Share{},
		&SavedPost{},
		&Report{},
		&PostView{},
		&Notification{},
		&ConnectionRequest{},
		&Connection{},
		&Follow{},
		&Block{},
		&FeedPreference{},
		&MutedUser{},
		&MutedHashtag{},
		&Company{},
		&CompanyFollower{},
		&Job{},
		&JobApplication{},
		&SavedJob{},
		&JobView{},
	}
}
