package models

import "time"

// Experience is a position on a member's profile
type Experience struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Company     string     `json:"company" gorm:"size:100;not null"`
	Location    string     `json:"location" gorm:"size:100"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsCurrent   bool       `json:"is_current"`
	Description string     `json:"description" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Education is a school entry on a member's profile
type Education struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	School       string    `json:"school" gorm:"size:100;not null"`
	Degree       string    `json:"degree" gorm:"size:100"`
	FieldOfStudy string    `json:"field_of_study" gorm:"size:100"`
	StartYear    int       `json:"start_year"`
	EndYear      *int      `json:"end_year,omitempty"`
	Description  string    `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Education) TableName() string {
	return "user_education"
}

type Skill struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSkill links a member to a skill; endorsements are counted on it
type UserSkill struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"uniqueIndex:idx_user_skill;not null"`
	SkillID          uint      `json:"skill_id" gorm:"uniqueIndex:idx_user_skill;not null"`
	Skill            Skill     `json:"skill" gorm:"foreignKey:SkillID"`
	EndorsementCount int64     `json:"endorsement_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type SkillEndorsement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserSkillID uint      `json:"user_skill_id" gorm:"uniqueIndex:idx_skill_endorser;not null"`
	EndorserID  uint      `json:"endorser_id" gorm:"uniqueIndex:idx_skill_endorser;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExperienceRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Company     string     `json:"company" validate:"required,max=100"`
	Location    string     `json:"location" validate:"max=100"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
	Description string     `json:"description" validate:"max=2000"`
}

type EducationRequest struct {
	School       string `json:"school" validate:"required,max=100"`
	Degree       string `json:"degree" validate:"max=100"`
	FieldOfStudy string `json:"field_of_study" validate:"max=100"`
	StartYear    int    `json:"start_year" validate:"required,min=1900,max=2100"`
	EndYear      *int   `json:"end_year" validate:"omitempty,min=1900,max=2100"`
	Description  string `json:"description" validate:"max=2000"`
}

type AddSkillRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// Profile is the full member page: account fields plus every section.
type Profile struct {
	User
	Experiences      []Experience `json:"experiences"`
	Education        []Education  `json:"education"`
	Skills           []UserSkill  `json:"skills"`
	ConnectionsCount int64        `json:"connections_count"`
	FollowersCount   int64        `json:"followers_count"`
	FollowingCount   int64        `json:"following_count"`
}
