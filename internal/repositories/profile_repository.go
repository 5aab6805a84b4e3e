package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository covers the experience, education and skill sections of
// a member profile.
type ProfileRepository interface {
	ListExperiences(ctx context.Context, userID uint) ([]models.Experience, error)
	GetExperience(ctx context.Context, userID, id uint) (*models.Experience, error)
	SaveExperience(ctx context.Context, exp *models.Experience) error
	DeleteExperience(ctx context.Context, userID, id uint) error

	ListEducation(ctx context.Context, userID uint) ([]models.Education, error)
	GetEducation(ctx context.Context, userID, id uint) (*models.Education, error)
	SaveEducation(ctx context.Context, edu *models.Education) error
	DeleteEducation(ctx context.Context, userID, id uint) error

	ListSkills(ctx context.Context, userID uint) ([]models.UserSkill, error)
	GetUserSkill(ctx context.Context, userID, id uint) (*models.UserSkill, error)
	AddSkill(ctx context.Context, userID uint, name string) (models.Upsert[*models.UserSkill], error)
	RemoveSkill(ctx context.Context, userID, id uint) error
	Endorse(ctx context.Context, userSkillID, endorserID uint) (bool, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) ListExperiences(ctx context.Context, userID uint) ([]models.Experience, error) {
	var out []models.Experience
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("is_current DESC, start_date DESC").Find(&out).Error
	return out, err
}

func (r *PostgresProfileRepository) GetExperience(ctx context.Context, userID, id uint) (*models.Experience, error) {
	var exp models.Experience
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&exp).Error; err != nil {
		return nil, translate(err)
	}
	return &exp, nil
}

// SaveExperience inserts or updates depending on whether ID is set
func (r *PostgresProfileRepository) SaveExperience(ctx context.Context, exp *models.Experience) error {
	return r.db.WithContext(ctx).Save(exp).Error
}

func (r *PostgresProfileRepository) DeleteExperience(ctx context.Context, userID, id uint) error {
	return deleteOwned(r.db.WithContext(ctx), &models.Experience{}, userID, id)
}

func (r *PostgresProfileRepository) ListEducation(ctx context.Context, userID uint) ([]models.Education, error) {
	var out []models.Education
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_year DESC").Find(&out).Error
	return out, err
}

func (r *PostgresProfileRepository) GetEducation(ctx context.Context, userID, id uint) (*models.Education, error) {
	var edu models.Education
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&edu).Error; err != nil {
		return nil, translate(err)
	}
	return &edu, nil
}

func (r *PostgresProfileRepository) SaveEducation(ctx context.Context, edu *models.Education) error {
	return r.db.WithContext(ctx).Save(edu).Error
}

func (r *PostgresProfileRepository) DeleteEducation(ctx context.Context, userID, id uint) error {
	return deleteOwned(r.db.WithContext(ctx), &models.Education{}, userID, id)
}

func (r *PostgresProfileRepository) ListSkills(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	var out []models.UserSkill
	err := r.db.WithContext(ctx).Preload("Skill").
		Where("user_id = ?", userID).
		Order("endorsement_count DESC, id").
		Find(&out).Error
	return out, err
}

func (r *PostgresProfileRepository) GetUserSkill(ctx context.Context, userID, id uint) (*models.UserSkill, error) {
	var us models.UserSkill
	if err := r.db.WithContext(ctx).Preload("Skill").Where("id = ? AND user_id = ?", id, userID).First(&us).Error; err != nil {
		return nil, translate(err)
	}
	return &us, nil
}

// AddSkill gets or creates the skill by name and links it to the member.
func (r *PostgresProfileRepository) AddSkill(ctx context.Context, userID uint, name string) (models.Upsert[*models.UserSkill], error) {
	var res models.Upsert[*models.UserSkill]
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skill := models.Skill{Name: strings.TrimSpace(name)}
		if err := tx.Where("LOWER(name) = ?", strings.ToLower(skill.Name)).FirstOrCreate(&skill).Error; err != nil {
			return err
		}
		us := &models.UserSkill{UserID: userID, SkillID: skill.ID}
		created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(us)
		if created.Error != nil {
			return created.Error
		}
		if created.RowsAffected == 0 {
			us = &models.UserSkill{}
			if err := tx.Where("user_id = ? AND skill_id = ?", userID, skill.ID).First(us).Error; err != nil {
				return err
			}
		}
		us.Skill = skill
		res = models.Upsert[*models.UserSkill]{Value: us, Created: created.RowsAffected > 0}
		return nil
	})
	return res, translate(err)
}

func (r *PostgresProfileRepository) RemoveSkill(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwned(tx, &models.UserSkill{}, userID, id); err != nil {
			return err
		}
		return tx.Where("user_skill_id = ?", id).Delete(&models.SkillEndorsement{}).Error
	})
}

// Endorse records one endorsement per endorser and bumps the counter.
// It reports false when the endorser had already endorsed the skill.
func (r *PostgresProfileRepository) Endorse(ctx context.Context, userSkillID, endorserID uint) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SkillEndorsement{UserSkillID: userSkillID, EndorserID: endorserID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.Model(&models.UserSkill{}).Where("id = ?", userSkillID).
			UpdateColumn("endorsement_count", gorm.Expr("endorsement_count + ?", 1)).Error
	})
	return created, err
}

func deleteOwned(db *gorm.DB, model interface{}, userID, id uint) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
