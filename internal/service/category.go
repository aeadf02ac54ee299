package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	translator   Translator
}

func NewCategoryService(categoryRepo repository.CategoryRepository, translator Translator) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		translator:   translator,
	}
}

func otherLang(lang domain.Lang) domain.Lang {
	if lang == domain.LangTurkish {
		return domain.LangEnglish
	}
	return domain.LangTurkish
}

// translateOrFallback fills the non-edited language. A translator failure
// never fails the write; the original text serves both languages instead.
func (s *categoryService) translateOrFallback(ctx context.Context, text string, from, to domain.Lang) string {
	logger.ExternalServiceCall("translator", "Translate", "from", from, "to", to)
	translated, err := s.translator.Translate(ctx, text, from, to)
	logger.ExternalServiceResult("translator", "Translate", err)
	if err != nil || strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}

// nameCollides checks the new name against every existing category's name in
// both languages at once; a clash in either language is a conflict.
func nameCollides(name string, categories []domain.Category, excludeID int32) bool {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, c := range categories {
		if c.ID == excludeID {
			continue
		}
		if strings.ToLower(c.NameTr) == lowered || strings.ToLower(c.NameEn) == lowered {
			return true
		}
	}
	return false
}

func validLang(lang domain.Lang) bool {
	return lang == domain.LangTurkish || lang == domain.LangEnglish
}

func (s *categoryService) CreateCategory(ctx context.Context, homeID int32, name string, lang domain.Lang, kind domain.CategoryKind, icon, color string) (*domain.Category, error) {
	logger.EnterMethod("categoryService.CreateCategory", "homeID", homeID, "name", name, "lang", lang, "kind", kind)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Errorf(domain.KindValidation, "category name is required")
	}
	if !validLang(lang) {
		return nil, domain.Errorf(domain.KindValidation, "unsupported language %q", lang)
	}
	switch kind {
	case domain.CategoryKindIncome, domain.CategoryKindExpense, domain.CategoryKindBoth:
	default:
		return nil, domain.Errorf(domain.KindValidation, "unknown category kind %q", kind)
	}

	existing, err := s.categoryRepo.ListByHome(ctx, homeID, nil)
	if err != nil {
		logger.ExitMethodWithError("categoryService.CreateCategory", err, "homeID", homeID)
		return nil, err
	}
	if nameCollides(name, existing, 0) {
		return nil, domain.Errorf(domain.KindConflict, "a category named %q already exists", name)
	}

	category := &domain.Category{
		HomeID: &homeID,
		Kind:   kind,
		Icon:   icon,
		Color:  color,
	}
	translated := s.translateOrFallback(ctx, name, lang, otherLang(lang))
	if lang == domain.LangTurkish {
		category.NameTr = name
		category.NameEn = translated
	} else {
		category.NameEn = name
		category.NameTr = translated
	}

	// The translated name can collide even when the entered one does not.
	if nameCollides(category.Name(otherLang(lang)), existing, 0) {
		return nil, domain.Errorf(domain.KindConflict, "a category named %q already exists", category.Name(otherLang(lang)))
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.ExitMethodWithError("categoryService.CreateCategory", err, "homeID", homeID)
		return nil, err
	}

	logger.ExitMethod("categoryService.CreateCategory", "categoryID", category.ID)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, homeID, categoryID int32, name string, lang domain.Lang, icon, color string) (*domain.Category, error) {
	logger.EnterMethod("categoryService.UpdateCategory", "homeID", homeID, "categoryID", categoryID)

	category, err := s.getHomeCategory(ctx, homeID, categoryID)
	if err != nil {
		return nil, err
	}
	if category.HomeID == nil {
		return nil, domain.Errorf(domain.KindValidation, "global default categories cannot be edited")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Errorf(domain.KindValidation, "category name is required")
	}
	if !validLang(lang) {
		return nil, domain.Errorf(domain.KindValidation, "unsupported language %q", lang)
	}

	existing, err := s.categoryRepo.ListByHome(ctx, homeID, nil)
	if err != nil {
		logger.ExitMethodWithError("categoryService.UpdateCategory", err, "homeID", homeID)
		return nil, err
	}
	if nameCollides(name, existing, categoryID) {
		return nil, domain.Errorf(domain.KindConflict, "a category named %q already exists", name)
	}

	// Editing one language re-translates the other.
	translated := s.translateOrFallback(ctx, name, lang, otherLang(lang))
	if lang == domain.LangTurkish {
		category.NameTr = name
		category.NameEn = translated
	} else {
		category.NameEn = name
		category.NameTr = translated
	}
	if icon != "" {
		category.Icon = icon
	}
	if color != "" {
		category.Color = color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.ExitMethodWithError("categoryService.UpdateCategory", err, "categoryID", categoryID)
		return nil, err
	}

	logger.ExitMethod("categoryService.UpdateCategory", "categoryID", categoryID)
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, homeID, categoryID int32) error {
	logger.EnterMethod("categoryService.DeleteCategory", "homeID", homeID, "categoryID", categoryID)

	category, err := s.getHomeCategory(ctx, homeID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault || category.HomeID == nil {
		return domain.Errorf(domain.KindValidation, "default categories cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(domain.KindNotFound, "category %d does not exist", categoryID)
		}
		logger.ExitMethodWithError("categoryService.DeleteCategory", err, "categoryID", categoryID)
		return err
	}

	logger.ExitMethod("categoryService.DeleteCategory", "categoryID", categoryID)
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, homeID int32, kind *domain.CategoryKind) ([]domain.Category, error) {
	return s.categoryRepo.ListByHome(ctx, homeID, kind)
}

func (s *categoryService) getHomeCategory(ctx context.Context, homeID, categoryID int32) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "category %d does not exist", categoryID)
		}
		return nil, err
	}
	if category.HomeID != nil && *category.HomeID != homeID {
		return nil, domain.Errorf(domain.KindNotFound, "category %d does not exist", categoryID)
	}
	return category, nil
}
