package service

import (
	"strings"

	"helphub-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// normalizeCategoryName collapses internal whitespace and trims the ends;
// uniqueness is then checked case-insensitively on the normalized form.
func normalizeCategoryName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ListCategories returns all categories ordered by name. Public.
func (s *Service) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Order("name asc").Find(&cats).Error
	return cats, err
}

// CreateCategory adds a new category (Platform Manager only).
func (s *Service) CreateCategory(name, description string, actor Actor) (*models.Category, error) {
	if actor.Role != models.RolePlatformManager {
		return nil, unauthorizedf("only the platform manager can manage categories")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}
	norm := normalizeCategoryName(name)
	if norm == "" {
		return nil, validationf("category name is required")
	}

	cat := models.Category{Name: norm, Description: description}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?)", norm).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("category %q already exists", norm)
		}
		return tx.Create(&cat).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("category created", zap.String("name", norm))
	return &cat, nil
}

// UpdateCategory renames or re-describes a category (Platform Manager only).
func (s *Service) UpdateCategory(categoryID uint, name, description string, actor Actor) (*models.Category, error) {
	if actor.Role != models.RolePlatformManager {
		return nil, unauthorizedf("only the platform manager can manage categories")
	}
	if err := s.requireActive(actor); err != nil {
		return nil, err
	}
	norm := normalizeCategoryName(name)
	if norm == "" {
		return nil, validationf("category name is required")
	}

	var cat models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, categoryID).Error; err != nil {
			return wrapDBErr(err, "category not found")
		}
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", norm, categoryID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictf("category %q already exists", norm)
		}
		cat.Name = norm
		cat.Description = description
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category. Blocked while any request references
// it; volunteers specialising in it are detached in the same transaction.
func (s *Service) DeleteCategory(categoryID uint, actor Actor) error {
	if actor.Role != models.RolePlatformManager {
		return unauthorizedf("only the platform manager can manage categories")
	}
	if err := s.requireActive(actor); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, categoryID).Error; err != nil {
			return wrapDBErr(err, "category not found")
		}
		var refs int64
		if err := tx.Model(&models.Request{}).
			Where("category_id = ?", categoryID).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return conflictf("category %q is still referenced by %d request(s)", cat.Name, refs)
		}
		if err := tx.Model(&models.Volunteer{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("category deleted", zap.Uint("category_id", categoryID))
	return nil
}
