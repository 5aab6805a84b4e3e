package services

import (
	"context"
	"fmt"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
)

// ProfileService manages the experience, education and skill sections of
// a member profile.
type ProfileService struct {
	stores   Stores
	notifier *Notifier
	activity *ActivityLog
}

func NewProfileService(stores Stores, notifier *Notifier, activity *ActivityLog) *ProfileService {
	return &ProfileService{stores: stores, notifier: notifier, activity: activity}
}

// Profile gathers every section of a member profile viewable by viewer.
func (s *ProfileService) Profile(ctx context.Context, viewer, userID uint) (*models.Profile, error) {
	user, err := viewableUser(ctx, s.stores, viewer, userID)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{User: *user}
	if profile.Experiences, err = s.stores.Profiles.ListExperiences(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Education, err = s.stores.Profiles.ListEducation(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Skills, err = s.stores.Profiles.ListSkills(ctx, userID); err != nil {
		return nil, err
	}
	if profile.ConnectionsCount, err = s.stores.Connections.CountConnections(ctx, userID); err != nil {
		return nil, err
	}
	if profile.FollowersCount, err = s.stores.Follows.GetFollowersCount(ctx, userID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.stores.Follows.GetFollowingCount(ctx, userID); err != nil {
		return nil, err
	}
	profile.Experiences = nonNil(profile.Experiences)
	profile.Education = nonNil(profile.Education)
	profile.Skills = nonNil(profile.Skills)
	if viewer != userID {
		s.activity.trackObject(ctx, viewer, models.ActivityProfileView, "user", userID)
	}
	return profile, nil
}

func validExperience(req models.ExperienceRequest) error {
	if req.IsCurrent && req.EndDate != nil {
		return fieldError("end_date", "A current position cannot have an end date")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return fieldError("end_date", "End date cannot be before start date")
	}
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, actor uint, req models.ExperienceRequest) (*models.Experience, error) {
	if err := validExperience(req); err != nil {
		return nil, err
	}
	exp := &models.Experience{UserID: actor}
	applyExperience(exp, req)
	if err := s.stores.Profiles.SaveExperience(ctx, exp); err != nil {
		return nil, err
	}
	s.activity.trackObject(ctx, actor, models.ActivityProfileEdit, "experience", exp.ID)
	return exp, nil
}

func (s *ProfileService) UpdateExperience(ctx context.Context, actor, id uint, req models.ExperienceRequest) (*models.Experience, error) {
	if err := validExperience(req); err != nil {
		return nil, err
	}
	exp, err := s.stores.Profiles.GetExperience(ctx, actor, id)
	if err != nil {
		return nil, storeError(err, "Experience")
	}
	applyExperience(exp, req)
	if err := s.stores.Profiles.SaveExperience(ctx, exp); err != nil {
		return nil, err
	}
	s.activity.trackObject(ctx, actor, models.ActivityProfileEdit, "experience", exp.ID)
	return exp, nil
}

func applyExperience(exp *models.Experience, req models.ExperienceRequest) {
	exp.Title = req.Title
	exp.Company = req.Company
	exp.Location = req.Location
	exp.StartDate = req.StartDate
	exp.EndDate = req.EndDate
	exp.IsCurrent = req.IsCurrent
	exp.Description = req.Description
}

func (s *ProfileService) DeleteExperience(ctx context.Context, actor, id uint) error {
	return storeError(s.stores.Profiles.DeleteExperience(ctx, actor, id), "Experience")
}

func validEducation(req models.EducationRequest) error {
	if req.EndYear != nil && *req.EndYear < req.StartYear {
		return fieldError("end_year", "End year cannot be before start year")
	}
	return nil
}

func (s *ProfileService) AddEducation(ctx context.Context, actor uint, req models.EducationRequest) (*models.Education, error) {
	if err := validEducation(req); err != nil {
		return nil, err
	}
	edu := &models.Education{UserID: actor}
	applyEducation(edu, req)
	if err := s.stores.Profiles.SaveEducation(ctx, edu); err != nil {
		return nil, err
	}
	s.activity.trackObject(ctx, actor, models.ActivityProfileEdit, "education", edu.ID)
	return edu, nil
}

func (s *ProfileService) UpdateEducation(ctx context.Context, actor, id uint, req models.EducationRequest) (*models.Education, error) {
	if err := validEducation(req); err != nil {
		return nil, err
	}
	edu, err := s.stores.Profiles.GetEducation(ctx, actor, id)
	if err != nil {
		return nil, storeError(err, "Education")
	}
	applyEducation(edu, req)
	if err := s.stores.Profiles.SaveEducation(ctx, edu); err != nil {
		return nil, err
	}
	return edu, nil
}

func applyEducation(edu *models.Education, req models.EducationRequest) {
	edu.School = req.School
	edu.Degree = req.Degree
	edu.FieldOfStudy = req.FieldOfStudy
	edu.StartYear = req.StartYear
	edu.EndYear = req.EndYear
	edu.Description = req.Description
}

func (s *ProfileService) DeleteEducation(ctx context.Context, actor, id uint) error {
	return storeError(s.stores.Profiles.DeleteEducation(ctx, actor, id), "Education")
}

// AddSkill links a skill to the member. Adding a skill twice returns the
// existing link with created false.
func (s *ProfileService) AddSkill(ctx context.Context, actor uint, name string) (*models.UserSkill, bool, error) {
	res, err := s.stores.Profiles.AddSkill(ctx, actor, name)
	if err != nil {
		return nil, false, storeError(err, "Skill")
	}
	return res.Value, res.Created, nil
}

func (s *ProfileService) RemoveSkill(ctx context.Context, actor, id uint) error {
	return storeError(s.stores.Profiles.RemoveSkill(ctx, actor, id), "Skill")
}

// Endorse vouches for one of owner's skills. Members cannot endorse
// themselves and each endorser counts once.
func (s *ProfileService) Endorse(ctx context.Context, actor, owner, userSkillID uint) (models.Outcome, *models.UserSkill, error) {
	if actor == owner {
		return "", nil, validation("You cannot endorse your own skill")
	}
	if _, err := viewableUser(ctx, s.stores, actor, owner); err != nil {
		return "", nil, err
	}
	skill, err := s.stores.Profiles.GetUserSkill(ctx, owner, userSkillID)
	if err != nil {
		return "", nil, storeError(err, "Skill")
	}
	created, err := s.stores.Profiles.Endorse(ctx, skill.ID, actor)
	if err != nil {
		return "", nil, err
	}
	if !created {
		return models.OutcomeAlreadyEndorsed, skill, nil
	}
	skill.EndorsementCount++
	s.notifier.notify(ctx, models.Notice{
		Recipient: owner,
		Sender:    &actor,
		Type:      models.NotificationSystem,
		Title:     "New endorsement",
		Message:   fmt.Sprintf("%s endorsed you for %s", s.notifier.nameOf(ctx, actor), skill.Skill.Name),
		ActionURL: fmt.Sprintf("/users/%d", owner),
	})
	return models.OutcomeEndorsed, skill, nil
}
